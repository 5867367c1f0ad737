package app

import (
	"context"
	"strings"
	"testing"

	"estagio/internal/common"
	"estagio/internal/domain/document"
	"estagio/internal/domain/user"
)

func TestDocumentServiceUpload_CreatesThenReplaces(t *testing.T) {
	repo := newFakeDocumentRepo()
	files := newFakeFileStore()
	service := NewDocumentService(repo, files, noopLogger{})
	ownerID := common.NewUUID()

	first, created, err := service.Upload(context.Background(), ownerID, document.TypeCurriculum, "cv-v1.pdf", strings.NewReader("first version"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !created {
		t.Fatal("expected first upload to create")
	}

	second, created, err := service.Upload(context.Background(), ownerID, document.TypeCurriculum, "cv-v2.pdf", strings.NewReader("second version"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if created {
		t.Fatal("expected second upload to replace")
	}
	if second.ID != first.ID {
		t.Fatalf("expected replace to keep row id %s, got %s", first.ID, second.ID)
	}
	if second.OriginalName != "cv-v2.pdf" {
		t.Fatalf("expected new original name, got %q", second.OriginalName)
	}
	if repo.count() != 1 {
		t.Fatalf("expected a single metadata row, got %d", repo.count())
	}
	if files.count() != 1 {
		t.Fatalf("expected superseded file to be removed, %d files left", files.count())
	}
	if files.Exists(first.StoredName) {
		t.Fatal("expected old stored file to be gone")
	}
	if !files.Exists(second.StoredName) {
		t.Fatal("expected new stored file to exist")
	}
}

func TestDocumentServiceUpload_UnknownType(t *testing.T) {
	files := newFakeFileStore()
	service := NewDocumentService(newFakeDocumentRepo(), files, noopLogger{})

	_, _, err := service.Upload(context.Background(), common.NewUUID(), "DIPLOMA", "diploma.pdf", strings.NewReader("x"))
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	// Type is checked before any write, so nothing can be orphaned.
	if files.count() != 0 {
		t.Fatalf("expected no stored files, got %d", files.count())
	}
}

func TestDocumentServiceUpload_SeparateTypesCoexist(t *testing.T) {
	repo := newFakeDocumentRepo()
	service := NewDocumentService(repo, newFakeFileStore(), noopLogger{})
	ownerID := common.NewUUID()

	for _, docType := range []document.Type{document.TypeCurriculum, document.TypeInternshipAgreement} {
		if _, _, err := service.Upload(context.Background(), ownerID, docType, "file.pdf", strings.NewReader("x")); err != nil {
			t.Fatalf("type %s: expected nil error, got %v", docType, err)
		}
	}
	if repo.count() != 2 {
		t.Fatalf("expected 2 rows, got %d", repo.count())
	}
}

func TestDocumentServiceDelete_OwnershipScoped(t *testing.T) {
	repo := newFakeDocumentRepo()
	files := newFakeFileStore()
	service := NewDocumentService(repo, files, noopLogger{})
	ownerID := common.NewUUID()

	doc, _, err := service.Upload(context.Background(), ownerID, document.TypeCurriculum, "cv.pdf", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("expected upload to succeed, got %v", err)
	}

	if err := service.Delete(context.Background(), doc.ID, common.NewUUID()); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found for foreign requester, got %v", err)
	}
	if repo.count() != 1 {
		t.Fatal("expected row to survive foreign delete")
	}

	if err := service.Delete(context.Background(), doc.ID, ownerID); err != nil {
		t.Fatalf("expected owner delete to succeed, got %v", err)
	}
	if repo.count() != 0 || files.count() != 0 {
		t.Fatalf("expected row and file gone, rows=%d files=%d", repo.count(), files.count())
	}
}

func TestDocumentServiceOpen_Authorization(t *testing.T) {
	repo := newFakeDocumentRepo()
	files := newFakeFileStore()
	service := NewDocumentService(repo, files, noopLogger{})
	ownerID := common.NewUUID()

	doc, _, err := service.Upload(context.Background(), ownerID, document.TypeCurriculum, "cv.pdf", strings.NewReader("conteúdo"))
	if err != nil {
		t.Fatalf("expected upload to succeed, got %v", err)
	}

	if _, _, err := service.Open(context.Background(), doc.ID, common.NewUUID(), user.RoleStudent); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for another student, got %v", err)
	}

	_, content, err := service.Open(context.Background(), doc.ID, ownerID, user.RoleStudent)
	if err != nil {
		t.Fatalf("expected owner open to succeed, got %v", err)
	}
	content.Close()

	opened, content, err := service.Open(context.Background(), doc.ID, common.NewUUID(), user.RoleTechnician)
	if err != nil {
		t.Fatalf("expected technician open to succeed, got %v", err)
	}
	defer content.Close()
	if opened.OriginalName != "cv.pdf" {
		t.Fatalf("expected original name, got %q", opened.OriginalName)
	}
}

func TestDocumentServiceOpen_MissingFile(t *testing.T) {
	repo := newFakeDocumentRepo()
	files := newFakeFileStore()
	service := NewDocumentService(repo, files, noopLogger{})
	ownerID := common.NewUUID()

	doc, _, err := service.Upload(context.Background(), ownerID, document.TypeCurriculum, "cv.pdf", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("expected upload to succeed, got %v", err)
	}
	if err := files.Remove(doc.StoredName); err != nil {
		t.Fatalf("failed to drop stored file: %v", err)
	}

	if _, _, err := service.Open(context.Background(), doc.ID, ownerID, user.RoleStudent); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found for missing file, got %v", err)
	}
}
