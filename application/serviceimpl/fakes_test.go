package serviceimpl

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tasktrack/domain/models"
	"tasktrack/domain/ports"
)

// ==================== Repositories ====================

type fakeBoardRepo struct {
	CreateFunc      func(ctx context.Context, board *models.Board, categories []models.Category) error
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*models.Board, error)
	ListOwnedFunc   func(ctx context.Context, userID uuid.UUID) ([]models.Board, error)
	ListGuestFunc   func(ctx context.Context, userID uuid.UUID) ([]models.Board, error)
	UpdateFunc      func(ctx context.Context, board *models.Board) error
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
	AddGuestFunc    func(ctx context.Context, boardID, userID uuid.UUID) error
	RemoveGuestFunc func(ctx context.Context, boardID, userID uuid.UUID) error
	IsMemberFunc    func(ctx context.Context, boardID, userID uuid.UUID) (bool, bool, error)
	MemberIDsFunc   func(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error)
}

func (f *fakeBoardRepo) Create(ctx context.Context, board *models.Board, categories []models.Category) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, board, categories)
	}
	return nil
}

func (f *fakeBoardRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Board, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBoardRepo) ListOwned(ctx context.Context, userID uuid.UUID) ([]models.Board, error) {
	if f.ListOwnedFunc != nil {
		return f.ListOwnedFunc(ctx, userID)
	}
	return nil, nil
}

func (f *fakeBoardRepo) ListGuest(ctx context.Context, userID uuid.UUID) ([]models.Board, error) {
	if f.ListGuestFunc != nil {
		return f.ListGuestFunc(ctx, userID)
	}
	return nil, nil
}

func (f *fakeBoardRepo) Update(ctx context.Context, board *models.Board) error {
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, board)
	}
	return nil
}

func (f *fakeBoardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return nil
}

func (f *fakeBoardRepo) AddGuest(ctx context.Context, boardID, userID uuid.UUID) error {
	if f.AddGuestFunc != nil {
		return f.AddGuestFunc(ctx, boardID, userID)
	}
	return nil
}

func (f *fakeBoardRepo) RemoveGuest(ctx context.Context, boardID, userID uuid.UUID) error {
	if f.RemoveGuestFunc != nil {
		return f.RemoveGuestFunc(ctx, boardID, userID)
	}
	return nil
}

func (f *fakeBoardRepo) IsMember(ctx context.Context, boardID, userID uuid.UUID) (bool, bool, error) {
	if f.IsMemberFunc != nil {
		return f.IsMemberFunc(ctx, boardID, userID)
	}
	return false, false, gorm.ErrRecordNotFound
}

func (f *fakeBoardRepo) MemberIDs(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error) {
	if f.MemberIDsFunc != nil {
		return f.MemberIDsFunc(ctx, boardID)
	}
	return nil, nil
}

// ownerOf IsMemberFunc where only owner owns every board
func ownerOf(owner uuid.UUID) func(context.Context, uuid.UUID, uuid.UUID) (bool, bool, error) {
	return func(_ context.Context, _ uuid.UUID, userID uuid.UUID) (bool, bool, error) {
		return userID == owner, false, nil
	}
}

type fakeTaskRepo struct {
	CreateFunc         func(ctx context.Context, task *models.Task, categoryIDs, assigneeIDs []uuid.UUID) error
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*models.Task, error)
	ListByBoardFunc    func(ctx context.Context, boardID uuid.UUID) ([]models.Task, error)
	ListDueBetweenFunc func(ctx context.Context, from, to time.Time) ([]models.Task, error)
	UpdateFunc         func(ctx context.Context, task *models.Task, categoryIDs, assigneeIDs *[]uuid.UUID) error
	UpdateColumnFunc   func(ctx context.Context, id uuid.UUID, column models.Column) error
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *models.Task, categoryIDs, assigneeIDs []uuid.UUID) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, task, categoryIDs, assigneeIDs)
	}
	return nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTaskRepo) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]models.Task, error) {
	if f.ListByBoardFunc != nil {
		return f.ListByBoardFunc(ctx, boardID)
	}
	return nil, nil
}

func (f *fakeTaskRepo) ListDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error) {
	if f.ListDueBetweenFunc != nil {
		return f.ListDueBetweenFunc(ctx, from, to)
	}
	return nil, nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, task *models.Task, categoryIDs, assigneeIDs *[]uuid.UUID) error {
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, task, categoryIDs, assigneeIDs)
	}
	return nil
}

func (f *fakeTaskRepo) UpdateColumn(ctx context.Context, id uuid.UUID, column models.Column) error {
	if f.UpdateColumnFunc != nil {
		return f.UpdateColumnFunc(ctx, id, column)
	}
	return nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uuid.UUID]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) find(match func(*models.User) bool) (*models.User, error) {
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Username == username })
}

func (r *fakeUserRepo) GetByProvider(_ context.Context, provider, subject string) (*models.User, error) {
	return r.find(func(u *models.User) bool {
		return u.Provider == provider && u.ProviderSubject != nil && *u.ProviderSubject == subject
	})
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type fakeAttachmentRepo struct {
	ListByBoardFunc func(ctx context.Context, boardID uuid.UUID) ([]models.Attachment, error)
	ListByTaskFunc  func(ctx context.Context, taskID uuid.UUID) ([]models.Attachment, error)
	CreateFunc      func(ctx context.Context, a *models.Attachment) error
	deleted         []uuid.UUID
}

func (f *fakeAttachmentRepo) Create(ctx context.Context, a *models.Attachment) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, a)
	}
	return nil
}

func (f *fakeAttachmentRepo) GetByID(_ context.Context, _ uuid.UUID) (*models.Attachment, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttachmentRepo) ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.Attachment, error) {
	if f.ListByTaskFunc != nil {
		return f.ListByTaskFunc(ctx, taskID)
	}
	return nil, nil
}

func (f *fakeAttachmentRepo) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]models.Attachment, error) {
	if f.ListByBoardFunc != nil {
		return f.ListByBoardFunc(ctx, boardID)
	}
	return nil, nil
}

func (f *fakeAttachmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAttachmentRepo) DeleteByTask(_ context.Context, _ uuid.UUID) error {
	return nil
}

type fakeCategoryRepo struct {
	categories []models.Category
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *models.Category) error {
	f.categories = append(f.categories, *c)
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			c := f.categories[i]
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepo) ListByBoard(_ context.Context, boardID uuid.UUID) ([]models.Category, error) {
	var out []models.Category
	for _, c := range f.categories {
		if c.BoardID == boardID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, _ *models.Category) error { return nil }

func (f *fakeCategoryRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type fakeCommentRepo struct{}

func (fakeCommentRepo) Create(context.Context, *models.Comment) error { return nil }
func (fakeCommentRepo) GetByID(context.Context, uuid.UUID) (*models.Comment, error) {
	return nil, gorm.ErrRecordNotFound
}
func (fakeCommentRepo) ListByTask(context.Context, uuid.UUID) ([]models.Comment, error) {
	return nil, nil
}
func (fakeCommentRepo) Delete(context.Context, uuid.UUID) error { return nil }
func (fakeCommentRepo) DeleteByTask(context.Context, uuid.UUID) error { return nil }
func (fakeCommentRepo) CountByTask(context.Context, uuid.UUID) (int64, error) { return 0, nil }

type fakePriorityRepo struct {
	configs  map[uuid.UUID]*models.PriorityConfig
	replaced map[uuid.UUID][]models.Reminder
	lookups  int
}

func newFakePriorityRepo(configs ...*models.PriorityConfig) *fakePriorityRepo {
	r := &fakePriorityRepo{
		configs:  map[uuid.UUID]*models.PriorityConfig{},
		replaced: map[uuid.UUID][]models.Reminder{},
	}
	for _, c := range configs {
		r.configs[c.ID] = c
	}
	return r
}

func (r *fakePriorityRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.PriorityConfig, error) {
	var out []models.PriorityConfig
	for _, c := range r.configs {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakePriorityRepo) GetByID(_ context.Context, id uuid.UUID) (*models.PriorityConfig, error) {
	if c, ok := r.configs[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePriorityRepo) GetByUserAndPriority(_ context.Context, userID uuid.UUID, p models.Priority) (*models.PriorityConfig, error) {
	r.lookups++
	for _, c := range r.configs {
		if c.UserID == userID && c.Priority == p {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePriorityRepo) EnsureDefaults(_ context.Context, userID uuid.UUID) error {
	for _, c := range r.configs {
		if c.UserID == userID {
			return nil
		}
	}
	for _, p := range models.Priorities {
		id := uuid.New()
		r.configs[id] = &models.PriorityConfig{ID: id, UserID: userID, Priority: p, Label: string(p)}
	}
	return nil
}

func (r *fakePriorityRepo) ReplaceReminders(_ context.Context, configID uuid.UUID, reminders []models.Reminder) error {
	r.replaced[configID] = reminders
	if c, ok := r.configs[configID]; ok {
		c.Reminders = reminders
	}
	return nil
}

type fakeDeliveryRepo struct {
	mu        sync.Mutex
	delivered    map[string]bool
	deletedTasks []uuid.UUID
	CreateErr    error
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{delivered: map[string]bool{}}
}

func deliveryKey(taskID, userID uuid.UUID, fireAt time.Time) string {
	return fmt.Sprintf("%s:%s:%d", taskID, userID, fireAt.Unix())
}

func (r *fakeDeliveryRepo) Exists(_ context.Context, taskID, userID uuid.UUID, fireAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.delivered[deliveryKey(taskID, userID, fireAt)], nil
}

func (r *fakeDeliveryRepo) Create(_ context.Context, d *models.ReminderDelivery) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delivered[deliveryKey(d.TaskID, d.UserID, d.FireAt)] = true
	return nil
}

func (r *fakeDeliveryRepo) DeleteByTasks(_ context.Context, taskIDs []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletedTasks = append(r.deletedTasks, taskIDs...)
	return nil
}

// ==================== Ports ====================

type fakeStorage struct {
	DeleteFilesFunc func(ctx context.Context, paths []string) error
	uploaded        []string
	deleted         []string
}

var _ ports.StoragePort = (*fakeStorage)(nil)

func (s *fakeStorage) UploadFile(_ context.Context, r io.Reader, _ int64, path string, _ string) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	s.uploaded = append(s.uploaded, path)
	return s.GetFileURL(path), nil
}

func (s *fakeStorage) DeleteFiles(ctx context.Context, paths []string) error {
	if s.DeleteFilesFunc != nil {
		if err := s.DeleteFilesFunc(ctx, paths); err != nil {
			return err
		}
	}
	s.deleted = append(s.deleted, paths...)
	return nil
}

func (s *fakeStorage) GetFileURL(path string) string {
	return "http://files.test/" + path
}

func (s *fakeStorage) GetSignedURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return s.GetFileURL(path) + "?signed=1", nil
}

func (s *fakeStorage) GetProviderName() string {
	return "fake"
}

type fakeCache struct {
	values map[string]bool
	json   map[string][]byte
	dels   []string
}

var _ ports.CachePort = (*fakeCache)(nil)

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]bool{}, json: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, _ interface{}) error {
	return gorm.ErrRecordNotFound
}

func (c *fakeCache) SetJSON(_ context.Context, key string, _ interface{}, _ time.Duration) error {
	c.json[key] = []byte("{}")
	return nil
}

func (c *fakeCache) Set(_ context.Context, key string, _ interface{}, _ time.Duration) error {
	c.values[key] = true
	return nil
}

func (c *fakeCache) Exists(_ context.Context, keys ...string) (int64, error) {
	var n int64
	for _, k := range keys {
		if c.values[k] {
			n++
		}
	}
	return n, nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.values, k)
		delete(c.json, k)
	}
	c.dels = append(c.dels, keys...)
	return nil
}

type fakePublisher struct {
	events []*ports.ReminderEvent
	err    error
}

func (p *fakePublisher) PublishReminder(_ context.Context, event *ports.ReminderEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}
