package handler

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"slices"

	"github.com/fieldforce-dev/workforce/backend/internal/storage"
)

// filesOnly 把目录当作不存在处理，静态资源路由因此只能按完整路径下载单个文件
type filesOnly struct {
	fsys http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fsys.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}

	return file, nil
}

// parseForm 解析 multipart 表单，不带文件的普通表单也接受。请求体超过 UPLOAD_MAX_SIZE 时返回 *http.MaxBytesError
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.Upload.MaxSize)

	err := r.ParseMultipartForm(h.config.Upload.MaxMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

// saveUploads 保存请求中 fields 对应的文件（每个字段只取第一个），返回字段名到存储路径的映射。
// 请求中出现其他文件字段时拒绝整个请求；中途失败时已经写入的文件会被删除。
func (h *Handler) saveUploads(r *http.Request, fields ...string) (map[string]string, error) {
	saved := make(map[string]string)
	if r.MultipartForm == nil {
		return saved, nil
	}

	for field := range r.MultipartForm.File {
		if !slices.Contains(fields, field) {
			return nil, fmt.Errorf("%w: %q", storage.ErrUnknownField, field)
		}
	}

	for _, field := range fields {
		headers := r.MultipartForm.File[field]
		if len(headers) == 0 {
			continue
		}

		file, err := headers[0].Open()
		if err != nil {
			h.discardUploads(saved)
			return nil, err
		}

		path, err := h.blobs.Save(field, headers[0].Filename, file)
		file.Close()
		if err != nil {
			h.discardUploads(saved)
			return nil, err
		}
		saved[field] = path
	}

	return saved, nil
}

// formError 把表单解析失败转换为响应
func (h *Handler) formError(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.errorResponse(w, r, http.StatusRequestEntityTooLarge, "Upload too large")
		return
	}
	h.errorResponse(w, r, http.StatusBadRequest, msgInvalidBody)
}

// discardUploads 在数据库写入失败后尽力删除已经保存的文件，失败只记录日志
func (h *Handler) discardUploads(saved map[string]string) {
	for field, path := range saved {
		if err := h.blobs.Remove(path); err != nil {
			slog.Warn("无法删除已上传的文件", "field", field, "path", path, "error", err)
		}
	}
}

// uploadError 把上传过程中的错误转换为响应
func (h *Handler) uploadError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrUnknownField) {
		h.errorResponse(w, r, http.StatusBadRequest, "Unsupported upload field")
		return
	}
	h.internalServerError(w, r, err)
}

func savedPath(saved map[string]string, field string) *string {
	path, ok := saved[field]
	if !ok {
		return nil
	}
	return &path
}
