package models

import (
	"context"
	"errors"
	"time"

	"github.com/dayflowhq/dayflow_backend/config"
	"github.com/dayflowhq/dayflow_backend/utils"
	"gorm.io/gorm"
)

// notFoundOr collapses gorm's missing-record error into the not-found
// sentinel; real database failures pass through untouched.
func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrorRecordNotFound
	}
	return err
}

// SpreadsheetFile is the uploaded workbook's metadata record. The parsed
// sheet contents live in SheetTable rows; the raw bytes live on the storage
// provider under ObjectKey.
type SpreadsheetFile struct {
	ID           int         `gorm:"primary_key" json:"id"`
	UserId       int         `gorm:"index;not null" json:"user_id"`
	Filename     string      `gorm:"size:255;not null" json:"filename"`
	OriginalName string      `gorm:"size:255;not null" json:"original_name"`
	ObjectKey    string      `gorm:"size:512;not null" json:"object_key"`
	FileSize     int64       `gorm:"not null" json:"file_size"`
	MimeType     string      `gorm:"size:100" json:"mime_type"`
	SheetNames   StringSlice `gorm:"type:json" json:"sheet_names"`
	TotalRows    int         `gorm:"default:0" json:"total_rows"`
	TotalColumns int         `gorm:"default:0" json:"total_columns"`
	IsActive     *bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

// GetFile returns an active file owned by the current user.
// Ownership mismatch and soft-deleted files both surface as RecordNotFound.
func GetFile(ctx context.Context, id int) (*SpreadsheetFile, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return nil, errors.New("user id is required")
	}

	db := config.GetDB()
	var file SpreadsheetFile
	err := db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userId, true).
		First(&file, id).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &file, nil
}

// ListFiles returns the current user's active files, newest first, with an
// optional case-insensitive original-name search.
func ListFiles(ctx context.Context, search string, page int, limit int) ([]*SpreadsheetFile, *Pagination, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return nil, nil, errors.New("user id is required")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	db := config.GetDB()
	query := db.WithContext(ctx).Model(&SpreadsheetFile{}).
		Where("user_id = ? AND is_active = ?", userId, true)
	if search != "" {
		query = query.Where("original_name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var files []*SpreadsheetFile
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&files).Error; err != nil {
		return nil, nil, err
	}

	pagination := &Pagination{
		Page:  page,
		Limit: limit,
		Total: int(total),
		Pages: (int(total) + limit - 1) / limit,
	}
	return files, pagination, nil
}

// DownloadFile returns the stored original workbook bytes for an active file
// owned by the current user.
func DownloadFile(ctx context.Context, id int) (*SpreadsheetFile, []byte, error) {
	file, err := GetFile(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	data, err := utils.ReadUploadBytes(ctx, file.ObjectKey)
	if err != nil {
		return nil, nil, err
	}

	RecordAudit(ctx, AuditActionDownload, AuditResourceFile, file.ID, map[string]any{
		"filename": file.OriginalName,
	})

	return file, data, nil
}

// DeleteFile soft-deletes the record (isActive=false) and removes the stored
// workbook bytes. Parsed sheet rows are kept with the inactive record.
func DeleteFile(ctx context.Context, id int) (*SpreadsheetFile, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return nil, errors.New("user id is required")
	}

	db := config.GetDB()
	var file SpreadsheetFile
	if err := db.WithContext(ctx).Where("user_id = ?", userId).First(&file, id).Error; err != nil {
		return nil, notFoundOr(err)
	}

	if err := db.WithContext(ctx).Model(&file).Update("is_active", utils.NewFalse()).Error; err != nil {
		return nil, err
	}

	if err := utils.DeleteUpload(ctx, file.ObjectKey); err != nil {
		config.LogError(config.GetLogger(), "file.go", "DeleteFile", "remove stored bytes", file.ObjectKey, err)
	}

	RecordAudit(ctx, AuditActionDelete, AuditResourceFile, file.ID, map[string]any{
		"filename": file.OriginalName,
	})

	return &file, nil
}
