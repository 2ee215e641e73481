// Package storage 把上传的文件按表单字段放到本地磁盘上的不同目录中
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fiam/gounidecode/unidecode"
)

var (
	ErrUnknownField  = errors.New("unsupported upload field")
	ErrOutsideRoot   = errors.New("path is outside of the upload directory")
	ErrImportsInRoot = errors.New("import directory must not be inside the public upload directory")
)

type Bucket string

const (
	BucketAds     Bucket = "ads"
	BucketPhotos  Bucket = "photos"
	BucketResumes Bucket = "resumes"
	BucketImports Bucket = "imports"
)

var fieldBuckets = map[string]Bucket{
	"ad_image": BucketAds,
	"photo":    BucketPhotos,
	"resume":   BucketResumes,
	"csv":      BucketImports,
}

// BucketFor 根据表单字段名决定文件所在的目录，未知字段直接拒绝
func BucketFor(field string) (Bucket, error) {
	bucket, ok := fieldBuckets[field]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return bucket, nil
}

// Local 把公开的文件放在 root 下按目录区分，导入用的 CSV 单独放在 importRoot 中
type Local struct {
	root       string
	importRoot string
	now        func() time.Time
}

func NewLocal(root string, importRoot string) *Local {
	return &Local{
		root:       root,
		importRoot: importRoot,
		now:        time.Now,
	}
}

// Root 返回可以作为静态资源公开的目录
func (l *Local) Root() string {
	return l.root
}

// Validate 检查导入目录没有落在公开目录之下
func (l *Local) Validate() error {
	root, err := filepath.Abs(l.root)
	if err != nil {
		return err
	}
	importRoot, err := filepath.Abs(l.importRoot)
	if err != nil {
		return err
	}
	if importRoot == root || within(root, importRoot) {
		return ErrImportsInRoot
	}
	return nil
}

func (l *Local) dirFor(bucket Bucket) string {
	if bucket == BucketImports {
		return l.importRoot
	}
	return filepath.Join(l.root, string(bucket))
}

// Save 将 src 写入字段对应的目录，返回以 / 分隔的存储路径（例如 uploads/photos/1700000000000_me.jpg，
// CSV 则是 imports/1700000000000_customers.csv）。
// 同一毫秒内上传的同名文件会互相覆盖。
func (l *Local) Save(field string, filename string, src io.Reader) (string, error) {
	bucket, err := BucketFor(field)
	if err != nil {
		return "", err
	}

	dir := l.dirFor(bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d_%s", l.now().UnixMilli(), sanitizeFilename(filename))
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}

	return filepath.ToSlash(path), nil
}

// Remove 删除之前由 Save 返回的文件，已经不存在的文件不算错误
func (l *Local) Remove(path string) error {
	p := filepath.FromSlash(path)
	if !within(l.root, p) && !within(l.importRoot, p) {
		return ErrOutsideRoot
	}

	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}

// within 判断 p 是否位于 base 目录之内（不含 base 本身）
func within(base string, p string) bool {
	rel, err := filepath.Rel(base, p)
	return err == nil && rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func sanitizeFilename(name string) string {
	// 客户端可能带上目录（包括 Windows 风格的路径），只保留最后一段
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	name = unidecode.Unidecode(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	sanitized := strings.Trim(b.String(), ".")
	if sanitized == "" {
		return "file"
	}
	return sanitized
}
