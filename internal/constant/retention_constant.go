package constant

// Retention audit actions. These are the only values ever written to the
// action column of retention_logs.
const (
	RetentionActionWarningSent        = "warning_sent"
	RetentionActionDataDeleted        = "data_deleted"
	RetentionActionRetentionExtended  = "retention_extended"
	RetentionActionRetentionCancelled = "retention_cancelled"
)

// Machine-readable reasons for automated actions.
const (
	RetentionReasonInactivityWarning = "automatic_inactivity_warning"
	RetentionReasonPolicyDeletion    = "automatic_retention_policy"
)

// PerformedBySystem marks audit entries written by the scheduled sweeps.
// Admin-initiated entries use "admin:<uuid>" instead.
const PerformedBySystem = "system"

// AnonymizedEmailDomain is the synthetic domain written over personal email
// addresses when an account is erased.
const AnonymizedEmailDomain = "anonymized.local"

// AnonymizedName replaces the member's name on erasure.
const AnonymizedName = "Deleted User"
