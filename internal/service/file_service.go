package service

import (
	"os"

	"survey-go/internal/utils"
)

// ServedFile 可以直接输出的文件
type ServedFile struct {
	Path     string
	Name     string
	MimeType string
	Size     int64
}

// FileService 上传目录下的文件读取
type FileService struct {
	root string
}

// NewFileService 创建文件服务
func NewFileService(root string) *FileService {
	return &FileService{root: root}
}

// Resolve 解析请求路径；越出上传目录返回 ErrAccessDenied，不存在或是目录返回 ErrFileNotFound
func (s *FileService) Resolve(requestPath string) (*ServedFile, error) {
	path, ok := utils.SafeJoin(s.root, requestPath)
	if !ok {
		return nil, ErrAccessDenied
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, ErrFileNotFound
	}

	return &ServedFile{
		Path:     path,
		Name:     info.Name(),
		MimeType: utils.MimeTypeByExt(path),
		Size:     info.Size(),
	}, nil
}

func removeQuietly(path string) {
	_ = os.Remove(path)
}
