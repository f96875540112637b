package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/example/milestone/internal/core/habit"
	"github.com/example/milestone/internal/ports/secondary"
)

// mockUnlockRepository implements secondary.UnlockRepository for testing.
// Unlocking clears the linked progress store, like the real repository does
// in one transaction.
type mockUnlockRepository struct {
	mu       sync.Mutex
	records  map[string]*secondary.UnlockRecord
	order    []string
	progress *mockProgressRepository

	unlockErr   error
	failIDs     map[string]int // remaining failing calls per id; -1 fails forever
	unlockCalls int
	listErr     error
}

func newMockUnlockRepository(progress *mockProgressRepository) *mockUnlockRepository {
	return &mockUnlockRepository{
		records:  make(map[string]*secondary.UnlockRecord),
		progress: progress,
	}
}

func (m *mockUnlockRepository) Unlock(ctx context.Context, record *secondary.UnlockRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unlockCalls++
	if n := m.failIDs[record.AchievementID]; n != 0 {
		if n > 0 {
			m.failIDs[record.AchievementID] = n - 1
		}
		return m.unlockErr
	}
	if _, ok := m.records[record.AchievementID]; ok {
		return fmt.Errorf("achievement %s: %w", record.AchievementID, secondary.ErrAlreadyUnlocked)
	}
	copied := *record
	m.records[record.AchievementID] = &copied
	m.order = append(m.order, record.AchievementID)
	if m.progress != nil {
		_ = m.progress.Delete(ctx, record.AchievementID)
	}
	return nil
}

func (m *mockUnlockRepository) GetByID(ctx context.Context, achievementID string) (*secondary.UnlockRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.records[achievementID]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, fmt.Errorf("unlocked achievement %s: %w", achievementID, secondary.ErrNotFound)
}

func (m *mockUnlockRepository) List(ctx context.Context) ([]*secondary.UnlockRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*secondary.UnlockRecord, 0, len(m.order))
	for _, id := range m.order {
		copied := *m.records[id]
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockUnlockRepository) MarkViewed(ctx context.Context, achievementID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[achievementID]
	if !ok {
		return fmt.Errorf("unlocked achievement %s: %w", achievementID, secondary.ErrNotFound)
	}
	r.Viewed = true
	return nil
}

// seed stores an unlock directly, bypassing failure injection.
func (m *mockUnlockRepository) seed(ids ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		m.records[id] = &secondary.UnlockRecord{AchievementID: id, UnlockedAt: "2026-01-01T00:00:00Z"}
		m.order = append(m.order, id)
	}
}

func (m *mockUnlockRepository) ids() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

// mockProgressRepository implements secondary.ProgressRepository for testing.
type mockProgressRepository struct {
	mu          sync.Mutex
	records     map[string]*secondary.ProgressRecord
	upsertCalls int
	upsertErr   error
}

func newMockProgressRepository() *mockProgressRepository {
	return &mockProgressRepository{records: make(map[string]*secondary.ProgressRecord)}
}

func (m *mockProgressRepository) Upsert(ctx context.Context, record *secondary.ProgressRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertCalls++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	copied := *record
	m.records[record.AchievementID] = &copied
	return nil
}

func (m *mockProgressRepository) GetByID(ctx context.Context, achievementID string) (*secondary.ProgressRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.records[achievementID]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, fmt.Errorf("progress %s: %w", achievementID, secondary.ErrNotFound)
}

func (m *mockProgressRepository) List(ctx context.Context) ([]*secondary.ProgressRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*secondary.ProgressRecord, 0, len(m.records))
	for _, r := range m.records {
		copied := *r
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AchievementID < out[j].AchievementID })
	return out, nil
}

func (m *mockProgressRepository) Delete(ctx context.Context, achievementID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, achievementID)
	return nil
}

// mockGridRepository implements secondary.GridRepository for testing.
type mockGridRepository struct {
	mu           sync.Mutex
	record       *secondary.GridRecord
	createCalls  int
	replaceCalls int
}

func newMockGridRepository() *mockGridRepository {
	return &mockGridRepository{}
}

func (m *mockGridRepository) CreateIfAbsent(ctx context.Context, record *secondary.GridRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.record != nil {
		return false, nil
	}
	copied := *record
	m.record = &copied
	return true, nil
}

func (m *mockGridRepository) Get(ctx context.Context) (*secondary.GridRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.record == nil {
		return nil, fmt.Errorf("grid: %w", secondary.ErrNotFound)
	}
	copied := *m.record
	return &copied, nil
}

func (m *mockGridRepository) Replace(ctx context.Context, record *secondary.GridRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replaceCalls++
	copied := *record
	m.record = &copied
	return nil
}

func (m *mockGridRepository) Delete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record = nil
	return nil
}

// mockHabitStore implements secondary.HabitRepository and
// secondary.HabitFactsReader over in-memory habits.
type mockHabitStore struct {
	mu             sync.Mutex
	habits         map[string]*secondary.HabitRecord
	order          []string
	completions    map[string][]*secondary.CompletionRecord
	customizations int

	listErr error
}

func newMockHabitStore() *mockHabitStore {
	return &mockHabitStore{
		habits:      make(map[string]*secondary.HabitRecord),
		completions: make(map[string][]*secondary.CompletionRecord),
	}
}

func (m *mockHabitStore) Create(ctx context.Context, record *secondary.HabitRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *record
	m.habits[record.ID] = &copied
	m.order = append(m.order, record.ID)
	return nil
}

func (m *mockHabitStore) GetByID(ctx context.Context, id string) (*secondary.HabitRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.habits[id]; ok {
		copied := *h
		return &copied, nil
	}
	return nil, fmt.Errorf("habit %s: %w", id, secondary.ErrNotFound)
}

func (m *mockHabitStore) FindActiveByName(ctx context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.order {
		h := m.habits[id]
		if !h.Archived && strings.EqualFold(h.Name, name) {
			return h.ID, nil
		}
	}
	return "", nil
}

func (m *mockHabitStore) Archive(ctx context.Context, id, archivedAt string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.habits[id]
	if !ok {
		return fmt.Errorf("habit %s: %w", id, secondary.ErrNotFound)
	}
	h.Archived = true
	h.ArchivedAt = archivedAt
	return nil
}

func (m *mockHabitStore) AddCompletion(ctx context.Context, c *secondary.CompletionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *c
	m.completions[c.HabitID] = append(m.completions[c.HabitID], &copied)
	return nil
}

func (m *mockHabitStore) Customize(ctx context.Context, c *secondary.CustomizationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.habits[c.HabitID]
	if !ok {
		return fmt.Errorf("habit %s: %w", c.HabitID, secondary.ErrNotFound)
	}
	if c.Name != "" {
		h.Name = c.Name
	}
	if c.Icon != "" {
		h.Icon = c.Icon
	}
	if c.Color != "" {
		h.Color = c.Color
	}
	m.customizations++
	return nil
}

func (m *mockHabitStore) ListHabits(ctx context.Context, today string) ([]*secondary.HabitRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*secondary.HabitRecord, 0, len(m.order))
	for _, id := range m.order {
		copied := *m.habits[id]
		dates := make([]string, 0, len(m.completions[id]))
		for _, c := range m.completions[id] {
			dates = append(dates, c.Date)
		}
		copied.CurrentStreak = habit.CurrentStreak(dates, today)
		copied.LongestStreak = habit.LongestStreak(dates)
		copied.TotalCompletions = len(m.completions[id])
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockHabitStore) ListDayRecords(ctx context.Context, habitID string) ([]*secondary.DayRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byKey := make(map[string]*secondary.DayRecord)
	var keys []string
	for id, completions := range m.completions {
		if habitID != "" && id != habitID {
			continue
		}
		for _, c := range completions {
			key := id + "|" + c.Date
			d, ok := byKey[key]
			if !ok {
				d = &secondary.DayRecord{HabitID: id, Date: c.Date, FirstAt: c.Time, LastAt: c.Time}
				byKey[key] = d
				keys = append(keys, key)
			}
			d.Count++
			if c.Time < d.FirstAt {
				d.FirstAt = c.Time
			}
			if c.Time > d.LastAt {
				d.LastAt = c.Time
			}
		}
	}
	sort.Strings(keys)
	out := make([]*secondary.DayRecord, len(keys))
	for i, k := range keys {
		out[i] = byKey[k]
	}
	return out, nil
}

func (m *mockHabitStore) CountCustomizations(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.customizations, nil
}

func (m *mockHabitStore) OldestHabitCreatedAt(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	oldest := ""
	for _, h := range m.habits {
		if oldest == "" || h.CreatedAt < oldest {
			oldest = h.CreatedAt
		}
	}
	return oldest, nil
}

// addHabitWithStreak creates a habit completed on each of the days days
// ending at today (YYYY-MM-DD), at the given time.
func (m *mockHabitStore) addHabitWithStreak(id, name, createdAt, today, at string, days int) {
	_ = m.Create(context.Background(), &secondary.HabitRecord{ID: id, Name: name, CreatedAt: createdAt})
	end := mustDate(today)
	for i := days - 1; i >= 0; i-- {
		date := end.AddDate(0, 0, -i).Format("2006-01-02")
		_ = m.AddCompletion(context.Background(), &secondary.CompletionRecord{
			ID: id + "-" + date, HabitID: id, Date: date, Time: at, CompletedAt: date + "T" + at + ":00Z",
		})
	}
}

// mockLogWriter implements secondary.LogWriter for testing.
type mockLogWriter struct {
	mu      sync.Mutex
	entries []string
	err     error
}

func (m *mockLogWriter) record(entry string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	return m.record(fmt.Sprintf("create %s %s", entityType, entityID))
}

func (m *mockLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	return m.record(fmt.Sprintf("update %s %s %s %s->%s", entityType, entityID, fieldName, oldValue, newValue))
}

func (m *mockLogWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	return m.record(fmt.Sprintf("delete %s %s", entityType, entityID))
}

func (m *mockLogWriter) all() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.entries...)
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

var errDiskFull = errors.New("disk I/O error")

// Compile-time checks.
var (
	_ secondary.UnlockRepository   = (*mockUnlockRepository)(nil)
	_ secondary.ProgressRepository = (*mockProgressRepository)(nil)
	_ secondary.GridRepository     = (*mockGridRepository)(nil)
	_ secondary.HabitRepository    = (*mockHabitStore)(nil)
	_ secondary.HabitFactsReader   = (*mockHabitStore)(nil)
	_ secondary.LogWriter          = (*mockLogWriter)(nil)
)
