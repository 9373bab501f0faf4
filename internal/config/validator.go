package config

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/sarvind1/tat-calculator/internal/expr"
	tatcalcerrors "github.com/sarvind1/tat-calculator/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	stageIDPattern = regexp.MustCompile(`^[a-z0-9_]+$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("stage_id", func(fl validator.FieldLevel) bool {
			return stageIDPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})
	return validateInst
}

// ValidateCatalog performs structural validation (§4.1 step 1), confirms
// every expression field parses, and runs static cycle detection (§4.1
// step 2).
func ValidateCatalog(cat *Catalog) error {
	if cat == nil || len(cat.Stages) == 0 {
		return tatcalcerrors.NewConfigInvalidError(tatcalcerrors.InvalidMissingField, "stages", "catalog must contain at least one stage")
	}

	v := validatorInstance()
	seen := make(map[string]struct{}, len(cat.Stages))

	for _, stage := range cat.Stages {
		if err := v.Struct(stage); err != nil {
			return convertValidationError(stage.ID, err)
		}
		if _, dup := seen[stage.ID]; dup {
			return tatcalcerrors.NewConfigInvalidError(tatcalcerrors.InvalidBadValue, "id", fmt.Sprintf("duplicate stage id %q", stage.ID))
		}
		seen[stage.ID] = struct{}{}

		if err := validateExpressionFields(stage); err != nil {
			return err
		}
	}

	if cycle := detectStaticCycle(cat.Stages); len(cycle) > 0 {
		return tatcalcerrors.NewConfigCycleError(cycle)
	}

	return nil
}

// validateExpressionFields confirms every expression string on the stage
// parses, independent of what it evaluates to at runtime.
func validateExpressionFields(stage StageDescriptor) error {
	if stage.ActualTimestamp != "" {
		if _, err := expr.Parse(stage.ActualTimestamp); err != nil {
			return tatcalcerrors.NewConfigInvalidError(tatcalcerrors.InvalidBadValue, fieldFor(stage.ID, "actual_timestamp"), err.Error())
		}
	}
	if stage.PrecedingStage != "" {
		if _, err := expr.Parse(stage.PrecedingStage); err != nil {
			return tatcalcerrors.NewConfigInvalidError(tatcalcerrors.InvalidBadValue, fieldFor(stage.ID, "preceding_stage"), err.Error())
		}
	}
	if _, err := expr.Parse(stage.FallbackCalculation.Expression); err != nil {
		return tatcalcerrors.NewConfigInvalidError(tatcalcerrors.InvalidBadValue, fieldFor(stage.ID, "fallback_calculation.expression"), err.Error())
	}
	return nil
}

func convertValidationError(stageID string, err error) error {
	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		fe := ves[0]
		field := strings.ToLower(fe.Field())
		return tatcalcerrors.NewConfigInvalidError(tatcalcerrors.InvalidMissingField, fieldFor(stageID, field),
			fmt.Sprintf("failed validation for tag %q", fe.Tag()))
	}
	return tatcalcerrors.NewConfigInvalidError(tatcalcerrors.InvalidBadValue, stageID, err.Error())
}

func fieldFor(stageID, field string) string {
	return fmt.Sprintf("%s.%s", stageID, field)
}
