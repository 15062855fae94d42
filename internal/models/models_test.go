package models

import (
	"fmt"
	"testing"

	"survey-go/internal/config"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSqliteDSN(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"./database/app.db", "./database/app.db?_foreign_keys=on"},
		{"file:x?mode=memory", "file:x?mode=memory&_foreign_keys=on"},
		{"a.db?_foreign_keys=off", "a.db?_foreign_keys=off"},
	}
	for _, tt := range tests {
		if got := sqliteDSN(tt.in); got != tt.want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBeforeCreateAssignsIDs(t *testing.T) {
	db := openTestDB(t)

	survey := &Survey{Code: "SUPV-1", Title: "督導", JSONSchema: datatypes.JSON(`{}`)}
	if err := db.Create(survey).Error; err != nil {
		t.Fatalf("create survey: %v", err)
	}
	if len(survey.ID) != 36 {
		t.Errorf("expected uuid id, got %q", survey.ID)
	}

	resp := &Response{SurveyID: survey.ID, ResponseData: datatypes.JSON(`{"a":1}`)}
	if err := db.Create(resp).Error; err != nil {
		t.Fatalf("create response: %v", err)
	}

	file := &File{ResponseID: resp.ID, FileName: "a.pdf", FileType: "application/pdf", FileURL: "/api/serve-file/a.pdf", FileSize: 10}
	if err := db.Create(file).Error; err != nil {
		t.Fatalf("create file: %v", err)
	}
	if file.FileCategory != FileCategoryAttachment {
		t.Errorf("expected default category %q, got %q", FileCategoryAttachment, file.FileCategory)
	}
}

func TestCascadeDelete(t *testing.T) {
	db := openTestDB(t)

	survey := &Survey{Code: "GUIDE-1", Title: "輔導", JSONSchema: datatypes.JSON(`{}`)}
	db.Create(survey)
	resp := &Response{SurveyID: survey.ID, ResponseData: datatypes.JSON(`{}`)}
	db.Create(resp)
	db.Create(&File{ResponseID: resp.ID, FileName: "b.pdf", FileType: "application/pdf", FileURL: "/b", FileCategory: FileCategorySignature})

	if err := db.Delete(&Survey{}, "id = ?", survey.ID).Error; err != nil {
		t.Fatalf("delete survey: %v", err)
	}

	var responses, files int64
	db.Model(&Response{}).Count(&responses)
	db.Model(&File{}).Count(&files)
	if responses != 0 || files != 0 {
		t.Errorf("expected cascade delete, got %d responses and %d files", responses, files)
	}
}

func TestForeignKeyEnforced(t *testing.T) {
	db := openTestDB(t)

	err := db.Create(&Response{SurveyID: "missing", ResponseData: datatypes.JSON(`{}`)}).Error
	if err == nil {
		t.Fatal("expected foreign key violation for unknown survey")
	}
}
