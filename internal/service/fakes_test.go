package service

import (
	"context"
	"sort"
	"time"

	"hiking-portal-be/internal/entity"
	"hiking-portal-be/internal/pkg/logger"
	"hiking-portal-be/internal/repository/contract"
	"hiking-portal-be/internal/repository/specification"
	"hiking-portal-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory doubles for the repository layer so the lifecycle engine can be
// exercised with an injected clock and no database. The unit of work keeps a
// snapshot between Begin and Commit so rollback semantics are real.

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func (nopLogger) GetLogs(string, int, int) ([]logger.LogEntry, error) { return nil, nil }
func (nopLogger) GetLogById(string) (*logger.LogEntry, error)         { return nil, logger.ErrLogNotFound }

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User

	markWarnedErr error
	updateErr     error
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		r.users[u.Id] = cloneUser(u)
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users[user.Id] = cloneUser(user)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.users[user.Id] = cloneUser(user)
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if u, found := r.users[byID.ID]; found {
				return cloneUser(u), nil
			}
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var all []*entity.User
	for _, u := range r.users {
		all = append(all, cloneUser(u))
	}
	return all, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) FindWarningCandidates(ctx context.Context, cutoff time.Time) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.Status.IsTerminal() || u.WarningSentAt != nil || u.ScheduledDeletionAt != nil {
			continue
		}
		if !u.LastSeen().After(cutoff) {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastSeen().Before(out[j].LastSeen()) })
	return out, nil
}

func (r *fakeUserRepo) FindDeletionCandidates(ctx context.Context, now time.Time) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.Status.IsTerminal() || u.ScheduledDeletionAt == nil {
			continue
		}
		if !u.ScheduledDeletionAt.After(now) {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledDeletionAt.Before(*out[j].ScheduledDeletionAt)
	})
	return out, nil
}

func (r *fakeUserRepo) MarkWarned(ctx context.Context, id uuid.UUID, warnedAt, deletionAt time.Time) error {
	if r.markWarnedErr != nil {
		return r.markWarnedErr
	}
	u, found := r.users[id]
	if !found {
		return nil
	}
	w, d := warnedAt, deletionAt
	u.WarningSentAt = &w
	u.ScheduledDeletionAt = &d
	return nil
}

func (r *fakeUserRepo) ExtendDeadline(ctx context.Context, id uuid.UUID, deadline, lastActive time.Time) error {
	u, found := r.users[id]
	if !found {
		return gorm.ErrRecordNotFound
	}
	d, a := deadline, lastActive
	u.ScheduledDeletionAt = &d
	u.LastActiveAt = &a
	return nil
}

func (r *fakeUserRepo) UpdateLastActive(ctx context.Context, id uuid.UUID, t time.Time) error {
	u, found := r.users[id]
	if !found || u.Status.IsTerminal() {
		return nil
	}
	at := t
	u.LastActiveAt = &at
	return nil
}

func (r *fakeUserRepo) CountWarningDue(ctx context.Context, cutoff time.Time) (int64, error) {
	candidates, _ := r.FindWarningCandidates(ctx, cutoff)
	return int64(len(candidates)), nil
}

func (r *fakeUserRepo) CountWarnedPending(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	for _, u := range r.users {
		if u.Status.IsTerminal() || u.WarningSentAt == nil || u.ScheduledDeletionAt == nil {
			continue
		}
		if u.ScheduledDeletionAt.After(now) {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) CountDeletionDue(ctx context.Context, now time.Time) (int64, error) {
	candidates, _ := r.FindDeletionCandidates(ctx, now)
	return int64(len(candidates)), nil
}

func (r *fakeUserRepo) CountByStatus(ctx context.Context, status entity.UserStatus) (int64, error) {
	var count int64
	for _, u := range r.users {
		if u.Status == status {
			count++
		}
	}
	return count, nil
}

type anonymizeCall struct {
	UserId    uuid.UUID
	Email     string
	DeletedAt time.Time
}

type fakePaymentRepo struct {
	payments     []*entity.HikePayment
	anonymized   []anonymizeCall
	anonymizeErr error
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.HikePayment) error {
	r.payments = append(r.payments, payment)
	return nil
}

func (r *fakePaymentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.HikePayment, error) {
	return r.payments, nil
}

func (r *fakePaymentRepo) AnonymizeForUser(ctx context.Context, userId uuid.UUID, anonymizedEmail string, deletedAt time.Time) (int64, error) {
	if r.anonymizeErr != nil {
		return 0, r.anonymizeErr
	}
	r.anonymized = append(r.anonymized, anonymizeCall{UserId: userId, Email: anonymizedEmail, DeletedAt: deletedAt})
	var touched int64
	for _, p := range r.payments {
		if p.UserId == userId {
			p.UserEmail = anonymizedEmail
			if p.Metadata == nil {
				p.Metadata = make(map[string]interface{})
			}
			p.Metadata["original_deleted_at"] = deletedAt.UTC().Format(time.RFC3339)
			touched++
		}
	}
	return touched, nil
}

type fakeContentRepo struct {
	purged   []uuid.UUID
	purgeErr error
}

func (r *fakeContentRepo) PurgeForUser(ctx context.Context, userId uuid.UUID) error {
	if r.purgeErr != nil {
		return r.purgeErr
	}
	r.purged = append(r.purged, userId)
	return nil
}

type fakeLogRepo struct {
	entries   []*entity.RetentionLog
	createErr error
}

func (r *fakeLogRepo) Create(ctx context.Context, log *entity.RetentionLog) error {
	if r.createErr != nil {
		return r.createErr
	}
	entry := *log
	if entry.Id == uuid.Nil {
		entry.Id = uuid.New()
	}
	r.entries = append(r.entries, &entry)
	return nil
}

func (r *fakeLogRepo) matches(e *entity.RetentionLog, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByUserID:
			if e.UserId == nil || *e.UserId != s.UserID {
				return false
			}
		case specification.FilterBy:
			if s.Field == "action" && e.Action != s.Value {
				return false
			}
		}
	}
	return true
}

func (r *fakeLogRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RetentionLog, error) {
	var out []*entity.RetentionLog
	for _, e := range r.entries {
		if r.matches(e, specs) {
			out = append(out, e)
		}
	}
	for _, spec := range specs {
		if p, ok := spec.(specification.Pagination); ok {
			if p.Offset < len(out) {
				out = out[p.Offset:]
			} else {
				out = nil
			}
			if p.Limit > 0 && p.Limit < len(out) {
				out = out[:p.Limit]
			}
		}
	}
	return out, nil
}

func (r *fakeLogRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	for _, e := range r.entries {
		if r.matches(e, specs) {
			count++
		}
	}
	return count, nil
}

func (r *fakeLogRepo) FindRecentForUser(ctx context.Context, userId uuid.UUID, limit int) ([]*entity.RetentionLog, error) {
	return r.FindAll(ctx, specification.ByUserID{UserID: userId}, specification.Pagination{Limit: limit})
}

func (r *fakeLogRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var kept []*entity.RetentionLog
	var pruned int64
	for _, e := range r.entries {
		if e.CreatedAt.Before(cutoff) {
			pruned++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return pruned, nil
}

func (r *fakeLogRepo) CountActionsSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, e := range r.entries {
		if !e.CreatedAt.Before(since) {
			out[e.Action]++
		}
	}
	return out, nil
}

type fakeNotifLogRepo struct {
	entries []*entity.NotificationLog
}

func (r *fakeNotifLogRepo) Create(ctx context.Context, log *entity.NotificationLog) error {
	r.entries = append(r.entries, log)
	return nil
}

func (r *fakeNotifLogRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NotificationLog, error) {
	return r.entries, nil
}

// fakeUow snapshots mutable state on Begin and restores it on Rollback, so
// transaction boundaries in the engine are verified, not assumed.
type fakeUow struct {
	users    *fakeUserRepo
	payments *fakePaymentRepo
	content  *fakeContentRepo
	logs     *fakeLogRepo
	notifs   *fakeNotifLogRepo

	commits   int
	rollbacks int

	userSnapshot    map[uuid.UUID]*entity.User
	logSnapshot     int
	anonSnapshot    int
	purgedSnapshot  int
	paymentSnapshot []entity.HikePayment
}

func (u *fakeUow) Begin(ctx context.Context) error {
	u.userSnapshot = make(map[uuid.UUID]*entity.User, len(u.users.users))
	for id, usr := range u.users.users {
		u.userSnapshot[id] = cloneUser(usr)
	}
	u.logSnapshot = len(u.logs.entries)
	u.anonSnapshot = len(u.payments.anonymized)
	u.purgedSnapshot = len(u.content.purged)
	u.paymentSnapshot = make([]entity.HikePayment, len(u.payments.payments))
	for i, p := range u.payments.payments {
		u.paymentSnapshot[i] = *p
		if p.Metadata != nil {
			meta := make(map[string]interface{}, len(p.Metadata))
			for k, v := range p.Metadata {
				meta[k] = v
			}
			u.paymentSnapshot[i].Metadata = meta
		}
	}
	return nil
}

func (u *fakeUow) Commit() error {
	u.userSnapshot = nil
	u.commits++
	return nil
}

func (u *fakeUow) Rollback() error {
	if u.userSnapshot != nil {
		u.users.users = u.userSnapshot
		u.userSnapshot = nil
		u.logs.entries = u.logs.entries[:u.logSnapshot]
		u.payments.anonymized = u.payments.anonymized[:u.anonSnapshot]
		u.content.purged = u.content.purged[:u.purgedSnapshot]
		for i := range u.paymentSnapshot {
			*u.payments.payments[i] = u.paymentSnapshot[i]
		}
	}
	u.rollbacks++
	return nil
}

func (u *fakeUow) UserRepository() contract.UserRepository                       { return u.users }
func (u *fakeUow) PaymentRepository() contract.PaymentRepository                 { return u.payments }
func (u *fakeUow) UserContentRepository() contract.UserContentRepository         { return u.content }
func (u *fakeUow) RetentionLogRepository() contract.RetentionLogRepository       { return u.logs }
func (u *fakeUow) NotificationLogRepository() contract.NotificationLogRepository { return u.notifs }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// fakeNotifier stands in for the notification service so send failures can be
// injected per user.
type fakeNotifier struct {
	sent    []uuid.UUID
	failFor map[uuid.UUID]error
}

func (n *fakeNotifier) SendRetentionWarning(ctx context.Context, user *entity.User, deletionDate time.Time) error {
	if err, found := n.failFor[user.Id]; found {
		return err
	}
	n.sent = append(n.sent, user.Id)
	return nil
}
