package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/dayflowhq/dayflow_backend/models"
	"github.com/gin-gonic/gin"
)

// uploadFileHandler ingests one multipart workbook upload: the raw bytes are
// stored first, then every sheet is parsed and persisted. Extension and size
// limits are enforced in the model layer.
func uploadFileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "uploadFileHandler")
		defer span.End()

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "no file uploaded"})
			return
		}

		src, err := fileHeader.Open()
		if err != nil {
			respondError(c, "fileHandlers.go", "uploadFileHandler", err)
			return
		}
		defer src.Close()

		// reject oversized bodies before buffering the whole thing
		if fileHeader.Size > models.MaxUploadSizeBytes {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "file size exceeds 10MB limit"})
			return
		}
		data, err := io.ReadAll(io.LimitReader(src, models.MaxUploadSizeBytes+1))
		if err != nil {
			respondError(c, "fileHandlers.go", "uploadFileHandler", err)
			return
		}

		file, err := models.IngestUpload(ctx, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
		if err != nil {
			respondError(c, "fileHandlers.go", "uploadFileHandler", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "file": file})
	}
}

func listFilesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		page := queryInt(c, "page", 1)
		limit := queryInt(c, "limit", 10)

		files, pagination, err := models.ListFiles(c.Request.Context(), c.Query("search"), page, limit)
		if err != nil {
			respondError(c, "fileHandlers.go", "listFilesHandler", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "files": files, "pagination": pagination})
	}
}

func getFileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		fileId, ok := pathIntParam(c, "fileId")
		if !ok {
			return
		}

		file, err := models.GetFile(c.Request.Context(), fileId)
		if err != nil {
			respondError(c, "fileHandlers.go", "getFileHandler", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "file": file})
	}
}

// downloadFileHandler streams back the originally uploaded bytes, untouched
// by any later cell edits (those live in the sheet tables, not the file).
func downloadFileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		fileId, ok := pathIntParam(c, "fileId")
		if !ok {
			return
		}

		file, data, err := models.DownloadFile(c.Request.Context(), fileId)
		if err != nil {
			respondError(c, "fileHandlers.go", "downloadFileHandler", err)
			return
		}

		contentType := file.MimeType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.OriginalName))
		c.Data(http.StatusOK, contentType, data)
	}
}

func deleteFileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		fileId, ok := pathIntParam(c, "fileId")
		if !ok {
			return
		}

		file, err := models.DeleteFile(c.Request.Context(), fileId)
		if err != nil {
			respondError(c, "fileHandlers.go", "deleteFileHandler", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "file": file})
	}
}
