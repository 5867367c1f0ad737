package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"estagio/internal/common"
	"estagio/internal/domain/application"
	"estagio/internal/domain/document"
	"estagio/internal/domain/notification"
	"estagio/internal/domain/posting"
	"estagio/internal/domain/user"
)

type noopLogger struct{}

func (noopLogger) Info(string)  {}
func (noopLogger) Error(string) {}

type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[common.UUID]*user.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, account user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == account.Email {
			return nil, common.NewError(common.CodeConflict, "email already registered", nil)
		}
		if account.CPF != "" && existing.CPF == account.CPF {
			return nil, common.NewError(common.CodeConflict, "cpf already registered", nil)
		}
		if account.Matricula != "" && existing.Matricula == account.Matricula {
			return nil, common.NewError(common.CodeConflict, "matrícula already registered", nil)
		}
	}
	account.ID = common.NewUUID()
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	r.byID[account.ID] = &account
	clone := account
	return &clone, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	clone := *account
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.byID {
		if account.Email == email {
			clone := *account
			return &clone, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "user not found", nil)
}

func (r *fakeUserRepo) GetByMatricula(ctx context.Context, matricula string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.byID {
		if account.Matricula == matricula {
			clone := *account
			return &clone, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "user not found", nil)
}

func (r *fakeUserRepo) ListStudents(ctx context.Context) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var students []user.User
	for _, account := range r.byID {
		if account.Role == user.RoleStudent {
			students = append(students, *account)
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].FullName < students[j].FullName })
	return students, nil
}

func (r *fakeUserRepo) ListStudentsByCourse(ctx context.Context, course string) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var students []user.User
	for _, account := range r.byID {
		if account.Role == user.RoleStudent && account.Course == course {
			students = append(students, *account)
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].FullName < students[j].FullName })
	return students, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, account user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current := r.byID[account.ID]
	if current == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	for id, existing := range r.byID {
		if id == account.ID {
			continue
		}
		if existing.Email == account.Email {
			return nil, common.NewError(common.CodeConflict, "email already registered", nil)
		}
	}
	account.UpdatedAt = time.Now().UTC()
	r.byID[account.ID] = &account
	clone := account
	return &clone, nil
}

func (r *fakeUserRepo) UpdateSettings(ctx context.Context, id common.UUID, settings user.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	account.Settings = settings
	return nil
}

type fakePostingRepo struct {
	mu           sync.Mutex
	byID         map[common.UUID]*posting.Posting
	applications *fakeApplicationRepo
}

func newFakePostingRepo() *fakePostingRepo {
	return &fakePostingRepo{byID: make(map[common.UUID]*posting.Posting)}
}

func (r *fakePostingRepo) Create(ctx context.Context, p posting.Posting) (*posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = common.NewUUID()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.byID[p.ID] = &p
	clone := p
	return &clone, nil
}

func (r *fakePostingRepo) Update(ctx context.Context, p posting.Posting) (*posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID[p.ID] == nil {
		return nil, common.NewError(common.CodeNotFound, "posting not found", nil)
	}
	p.UpdatedAt = time.Now().UTC()
	r.byID[p.ID] = &p
	clone := p
	return &clone, nil
}

func (r *fakePostingRepo) GetByID(ctx context.Context, id common.UUID) (*posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.byID[id]
	if p == nil {
		return nil, common.NewError(common.CodeNotFound, "posting not found", nil)
	}
	clone := *p
	return &clone, nil
}

func (r *fakePostingRepo) ListActive(ctx context.Context) ([]posting.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []posting.Summary
	for _, p := range r.byID {
		if p.Active {
			items = append(items, summaryOf(p))
		}
	}
	return items, nil
}

func (r *fakePostingRepo) ListByCreator(ctx context.Context, technicianID common.UUID) ([]posting.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []posting.Summary
	for _, p := range r.byID {
		if p.CreatedBy == technicianID {
			items = append(items, summaryOf(p))
		}
	}
	return items, nil
}

func (r *fakePostingRepo) DeleteCascade(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID[id] == nil {
		return common.NewError(common.CodeNotFound, "posting not found", nil)
	}
	if r.applications != nil {
		r.applications.deleteByPosting(id)
	}
	delete(r.byID, id)
	return nil
}

func summaryOf(p *posting.Posting) posting.Summary {
	return posting.Summary{
		ID:       p.ID,
		Title:    p.Title,
		Company:  p.Company,
		Location: p.Location,
		Stipend:  p.Stipend,
		OpensAt:  p.OpensAt,
		ClosesAt: p.ClosesAt,
		Active:   p.Active,
		ImageURL: p.ImageURL,
	}
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*application.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{byID: make(map[common.UUID]*application.Application)}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.StudentID == app.StudentID && existing.PostingID == app.PostingID {
			return nil, common.NewError(common.CodeConflict, "already applied to this posting", nil)
		}
	}
	app.ID = common.NewUUID()
	app.CreatedAt = time.Now().UTC()
	r.byID[app.ID] = &app
	clone := app
	return &clone, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.byID[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	clone := *app
	return &clone, nil
}

func (r *fakeApplicationRepo) FindByStudentAndPosting(ctx context.Context, studentID, postingID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.byID {
		if app.StudentID == studentID && app.PostingID == postingID {
			clone := *app
			return &clone, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "application not found", nil)
}

func (r *fakeApplicationRepo) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.StudentView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.StudentView
	for _, app := range r.byID {
		if app.StudentID == studentID {
			items = append(items, application.StudentView{Application: *app})
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListByPosting(ctx context.Context, postingID common.UUID) ([]application.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Applicant
	for _, app := range r.byID {
		if app.PostingID == postingID {
			items = append(items, application.Applicant{Application: *app})
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.byID[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	app.Status = status
	clone := *app
	return &clone, nil
}

func (r *fakeApplicationRepo) deleteByPosting(postingID common.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, app := range r.byID {
		if app.PostingID == postingID {
			delete(r.byID, id)
		}
	}
}

func (r *fakeApplicationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type fakeDocumentRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*document.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{byID: make(map[common.UUID]*document.Document)}
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc document.Document) (*document.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.OwnerID == doc.OwnerID && existing.Type == doc.Type {
			return nil, common.NewError(common.CodeConflict, "a document of this type already exists", nil)
		}
	}
	doc.ID = common.NewUUID()
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}
	r.byID[doc.ID] = &doc
	clone := doc
	return &clone, nil
}

func (r *fakeDocumentRepo) GetByID(ctx context.Context, id common.UUID) (*document.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc := r.byID[id]
	if doc == nil {
		return nil, common.NewError(common.CodeNotFound, "document not found", nil)
	}
	clone := *doc
	return &clone, nil
}

func (r *fakeDocumentRepo) FindByOwnerAndType(ctx context.Context, ownerID common.UUID, docType document.Type) (*document.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, doc := range r.byID {
		if doc.OwnerID == ownerID && doc.Type == docType {
			clone := *doc
			return &clone, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "document not found", nil)
}

func (r *fakeDocumentRepo) ListByOwner(ctx context.Context, ownerID common.UUID) ([]document.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []document.Document
	for _, doc := range r.byID {
		if doc.OwnerID == ownerID {
			items = append(items, *doc)
		}
	}
	return items, nil
}

func (r *fakeDocumentRepo) Replace(ctx context.Context, id common.UUID, storedName, originalName string, uploadedAt time.Time) (*document.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc := r.byID[id]
	if doc == nil {
		return nil, common.NewError(common.CodeNotFound, "document not found", nil)
	}
	doc.StoredName = storedName
	doc.OriginalName = originalName
	doc.UploadedAt = uploadedAt
	clone := *doc
	return &clone, nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID[id] == nil {
		return common.NewError(common.CodeNotFound, "document not found", nil)
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeDocumentRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type fakeNotificationRepo struct {
	mu    sync.Mutex
	items map[common.UUID]*notification.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{items: make(map[common.UUID]*notification.Notification)}
}

func (r *fakeNotificationRepo) CreateBatch(ctx context.Context, batch []notification.Notification) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range batch {
		item.ID = common.NewUUID()
		clone := item
		r.items[item.ID] = &clone
	}
	return len(batch), nil
}

func (r *fakeNotificationRepo) ListByRecipient(ctx context.Context, recipientID common.UUID) ([]notification.WithSender, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []notification.WithSender
	for _, item := range r.items {
		if item.RecipientID == recipientID {
			result = append(result, notification.WithSender{Notification: *item})
		}
	}
	return result, nil
}

func (r *fakeNotificationRepo) ListUnread(ctx context.Context, recipientID common.UUID, limit int) ([]notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []notification.Notification
	for _, item := range r.items {
		if item.RecipientID == recipientID && !item.Read {
			result = append(result, *item)
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id, recipientID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := r.items[id]
	if item == nil || item.RecipientID != recipientID {
		return common.NewError(common.CodeNotFound, "notification not found", nil)
	}
	item.Read = true
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, recipientID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.RecipientID == recipientID {
			item.Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) Delete(ctx context.Context, id, recipientID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := r.items[id]
	if item == nil || item.RecipientID != recipientID {
		return common.NewError(common.CodeNotFound, "notification not found", nil)
	}
	delete(r.items, id)
	return nil
}

type fakeFileStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	counter int
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: make(map[string][]byte)}
}

func (s *fakeFileStore) Save(originalName string, content io.Reader) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	storedName := fmt.Sprintf("stored-%d", s.counter)
	s.files[storedName] = data
	return storedName, nil
}

func (s *fakeFileStore) Remove(storedName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[storedName]; !ok {
		return fmt.Errorf("file %s not found", storedName)
	}
	delete(s.files, storedName)
	return nil
}

type readSeekCloser struct {
	*bytes.Reader
}

func (readSeekCloser) Close() error { return nil }

func (s *fakeFileStore) Open(storedName string) (io.ReadSeekCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[storedName]
	if !ok {
		return nil, fmt.Errorf("file %s not found", storedName)
	}
	return readSeekCloser{bytes.NewReader(data)}, nil
}

func (s *fakeFileStore) Exists(storedName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[storedName]
	return ok
}

func (s *fakeFileStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}
