// Package errors provides structured error handling for the Collabro engine.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Profile errors
	CodeProfileEmptyID        Code = "PROFILE_EMPTY_ID"
	CodeProfileEmptyAccountID Code = "PROFILE_EMPTY_ACCOUNT_ID"
	CodeProfileFieldTooLong   Code = "PROFILE_FIELD_TOO_LONG"
	CodeProfileAlreadyExists  Code = "PROFILE_ALREADY_EXISTS"

	// Skill errors
	CodeSkillEmptyName          Code = "SKILL_EMPTY_NAME"
	CodeSkillInvalidProficiency Code = "SKILL_INVALID_PROFICIENCY"
	CodeSkillDuplicateName      Code = "SKILL_DUPLICATE_NAME"

	// Social link errors
	CodeSocialLinkEmptyURL        Code = "SOCIAL_LINK_EMPTY_URL"
	CodeSocialLinkInvalidPlatform Code = "SOCIAL_LINK_INVALID_PLATFORM"

	// Project errors
	CodeProjectEmptyTitle               Code = "PROJECT_EMPTY_TITLE"
	CodeProjectEmptyCreatorID           Code = "PROJECT_EMPTY_CREATOR_ID"
	CodeProjectInvalidLevel             Code = "PROJECT_INVALID_LEVEL"
	CodeProjectInvalidStatusTransition  Code = "PROJECT_INVALID_STATUS_TRANSITION"
	CodeProjectNotOwnedByActor          Code = "PROJECT_NOT_OWNED_BY_ACTOR"

	// Collaboration request errors
	CodeRequestEmptyProjectID   Code = "REQUEST_EMPTY_PROJECT_ID"
	CodeRequestEmptyRequesterID Code = "REQUEST_EMPTY_REQUESTER_ID"
	CodeRequestOwnProject       Code = "REQUEST_OWN_PROJECT"
	CodeRequestDuplicate        Code = "REQUEST_DUPLICATE"
	CodeRequestAlreadyMember    Code = "REQUEST_ALREADY_MEMBER"
	CodeRequestNotPending       Code = "REQUEST_NOT_PENDING"
	CodeRequestAccessDenied     Code = "REQUEST_ACCESS_DENIED"

	// Team errors
	CodeTeamEmptyProjectID Code = "TEAM_EMPTY_PROJECT_ID"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - validation failures, malformed input
	case CodeProfileEmptyID,
		CodeProfileEmptyAccountID,
		CodeProfileFieldTooLong,
		CodeSkillEmptyName,
		CodeSkillInvalidProficiency,
		CodeSocialLinkEmptyURL,
		CodeSocialLinkInvalidPlatform,
		CodeProjectEmptyTitle,
		CodeProjectEmptyCreatorID,
		CodeProjectInvalidLevel,
		CodeRequestEmptyProjectID,
		CodeRequestEmptyRequesterID,
		CodeTeamEmptyProjectID:
		return http.StatusBadRequest

	// Forbidden - actor lacks the required relationship
	case CodeRequestAccessDenied,
		CodeProjectNotOwnedByActor:
		return http.StatusForbidden

	// Not found - referenced entity absent
	case CodeNotFound:
		return http.StatusNotFound

	// Conflict - duplicate request, self-join, already a member
	case CodeRequestOwnProject,
		CodeRequestDuplicate,
		CodeRequestAlreadyMember,
		CodeSkillDuplicateName,
		CodeProfileAlreadyExists:
		return http.StatusConflict

	// Unprocessable - operation not valid for the current status
	case CodeRequestNotPending,
		CodeProjectInvalidStatusTransition:
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}
