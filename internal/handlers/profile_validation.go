package handlers

import (
	"strconv"
	"strings"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/models"
)

func validGrade(grade string) bool {
	value, err := strconv.Atoi(strings.TrimSpace(grade))
	if err != nil {
		return false
	}
	return value >= 6 && value <= 8
}

func validateStudentOnboardingRequest(req studentOnboardingRequest) string {
	if strings.TrimSpace(req.DisplayName) == "" {
		return "display_name is required"
	}
	if !validGrade(req.Grade) {
		return "grade must be 6, 7, or 8"
	}
	for _, interest := range req.Interests {
		if strings.TrimSpace(interest) == "" {
			return "interests must not contain empty values"
		}
	}
	for _, period := range req.Schedule {
		if period.Period <= 0 {
			return "schedule periods must be greater than 0"
		}
		if strings.TrimSpace(period.Subject) == "" {
			return "schedule entries must have a subject"
		}
	}
	return ""
}

func validateMentorOnboardingRequest(req mentorOnboardingRequest) string {
	if strings.TrimSpace(req.DisplayName) == "" {
		return "display_name is required"
	}
	if req.MentorType != models.MentorTypePeer && req.MentorType != models.MentorTypeTeacher {
		return "mentor_type must be peer or teacher"
	}
	if req.MentorType == models.MentorTypePeer && !validGrade(req.Grade) {
		return "grade must be 6, 7, or 8 for peer mentors"
	}
	if strings.TrimSpace(req.Bio) == "" {
		return "bio is required"
	}
	return ""
}

func validateProfileUpdateRequest(req updateProfileRequest) string {
	if req.DisplayName != nil && strings.TrimSpace(*req.DisplayName) == "" {
		return "display_name must not be empty"
	}
	if req.Grade != nil && !validGrade(*req.Grade) {
		return "grade must be 6, 7, or 8"
	}
	if req.Interests != nil {
		for _, interest := range *req.Interests {
			if strings.TrimSpace(interest) == "" {
				return "interests must not contain empty values"
			}
		}
	}
	if req.MentorType != nil &&
		*req.MentorType != models.MentorTypePeer && *req.MentorType != models.MentorTypeTeacher {
		return "mentor_type must be peer or teacher"
	}
	return ""
}
