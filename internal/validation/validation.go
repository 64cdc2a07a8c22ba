package validation

import (
	"fmt"
	"strconv"

	"xui-sub-bot/internal/constants"
	apperrors "xui-sub-bot/internal/errors"
)

// ValidateDuration validates and parses a subscription duration in days
func ValidateDuration(durationStr string) (int, error) {
	days, err := strconv.Atoi(durationStr)
	if err != nil {
		return 0, &apperrors.ValidationError{Field: "duration", Message: "must be a number"}
	}

	if days < 1 {
		return 0, &apperrors.ValidationError{Field: "duration", Message: "must be at least 1 day"}
	}

	if days > constants.MaxDurationDays {
		return 0, &apperrors.ValidationError{
			Field:   "duration",
			Message: fmt.Sprintf("cannot exceed %d days", constants.MaxDurationDays),
		}
	}

	return days, nil
}
