package models

type UserStatus string
type UserRole string
type VerificationStatus string
type ContestStatus string
type ApplicationStatus string
type VideoStatus string
type PurchaseStatus string
type LicenseType string
type ApprovalAction string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleCreator UserRole = "creator"
	UserRoleBrand   UserRole = "brand"
	UserRoleAdmin   UserRole = "admin"

	VerificationStatusPending       VerificationStatus = "pending"
	VerificationStatusApproved      VerificationStatus = "approved"
	VerificationStatusRejected      VerificationStatus = "rejected"
	VerificationStatusInfoRequested VerificationStatus = "info_requested"
	VerificationStatusSuspended     VerificationStatus = "suspended"

	ContestStatusDraft       ContestStatus = "draft"
	ContestStatusPending     ContestStatus = "pending"
	ContestStatusActive      ContestStatus = "active"
	ContestStatusRejected    ContestStatus = "rejected"
	ContestStatusCompleted   ContestStatus = "completed"
	ContestStatusRequestEdit ContestStatus = "request_edit"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"

	VideoStatusDraft     VideoStatus = "draft"
	VideoStatusPublished VideoStatus = "published"
	VideoStatusDelisted  VideoStatus = "delisted"

	PurchaseStatusPending  PurchaseStatus = "pending"
	PurchaseStatusPaid     PurchaseStatus = "paid"
	PurchaseStatusFailed   PurchaseStatus = "failed"
	PurchaseStatusRefunded PurchaseStatus = "refunded"

	LicenseTypeStandard  LicenseType = "standard"
	LicenseTypeExclusive LicenseType = "exclusive"

	// Administrative actions driving status transitions.
	ActionApprove     ApprovalAction = "approve"
	ActionReject      ApprovalAction = "reject"
	ActionRequestInfo ApprovalAction = "request_info"
	ActionSuspend     ApprovalAction = "suspend"
	ActionRequestEdit ApprovalAction = "request_edit"
)
