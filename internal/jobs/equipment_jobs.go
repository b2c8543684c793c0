package jobs

import (
	"context"
	"time"

	"equiptrack-backend/internal/logger"
)

// SendReturnReminders emails every agent holding equipment past its expected
// return date. Delivery is best-effort per assignment.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()

		overdue, err := jr.store.Repos().Reports.OverdueAssignments(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to list overdue assignments", "error", err)
			return
		}

		sent := 0
		for _, o := range overdue {
			if o.AgentEmail == "" {
				logger.Debug("Skipping reminder, agent has no email",
					"assignment_id", o.AssignmentID,
					"agent_identifier", o.AgentIdentifier)
				continue
			}
			err := jr.email.SendReturnReminder(ctx, o.AgentEmail, o.AgentIdentifier, o.EquipmentSerial, o.ExpectedReturnAt)
			if err != nil {
				logger.Error("Failed to send return reminder",
					"assignment_id", o.AssignmentID,
					"error", err)
				continue
			}
			sent++
		}

		logger.Info("Return reminders processed", "overdue", len(overdue), "sent", sent)
	})
}

// PurgeExpiredInvites deletes unused invites that expired past the configured
// grace period. Used invites are kept for the audit trail.
func (jr *JobRunner) PurgeExpiredInvites() {
	jr.runWithRecovery("PurgeExpiredInvites", func() {
		ctx := context.Background()

		grace := time.Duration(jr.config.Invites.PurgeAfterDays) * 24 * time.Hour
		cutoff := time.Now().Add(-grace)

		deleted, err := jr.store.Repos().Invites.DeleteExpiredBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to purge expired invites", "error", err)
			return
		}
		logger.Info("Purged expired invites", "count", deleted, "cutoff", cutoff.Format("2006-01-02"))
	})
}
