package utils

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// utf8BOM Excel 打开 CSV 时据此识别编码
const utf8BOM = "\xEF\xBB\xBF"

// ConvertToJSONL 转换为JSONL格式
func ConvertToJSONL(items []interface{}) ([]byte, error) {
	var buf bytes.Buffer

	for _, item := range items {
		jsonData, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("序列化失败: %w", err)
		}
		buf.Write(jsonData)
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}

// ConvertToCSV 转换为CSV格式，带 BOM；行长度不足时补空
func ConvertToCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("写入CSV标题失败: %w", err)
	}

	for _, row := range rows {
		record := make([]string, len(headers))
		copy(record, row)
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("写入CSV数据失败: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV写入失败: %w", err)
	}

	return buf.Bytes(), nil
}

// SafeJoin 把相对路径拼到 root 下，结果不在 root 内时返回 false
func SafeJoin(root, rel string) (string, bool) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", false
	}

	target := filepath.Clean(filepath.Join(absRoot, filepath.FromSlash(rel)))
	if target == absRoot {
		return target, true
	}
	if !strings.HasPrefix(target, absRoot+string(filepath.Separator)) {
		return "", false
	}
	return target, true
}

// WriteFile 从 reader 写入文件，出错时删除半成品，返回写入字节数
func WriteFile(destPath string, r io.Reader) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return 0, fmt.Errorf("创建目录失败: %w", err)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("创建文件失败: %w", err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(destPath)
		return 0, fmt.Errorf("写入文件失败: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(destPath)
		return 0, fmt.Errorf("写入文件失败: %w", err)
	}

	return n, nil
}

// CopyFile 复制文件到目标路径
func CopyFile(srcPath, destPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("打开源文件失败: %w", err)
	}
	defer src.Close()

	_, err = WriteFile(destPath, src)
	return err
}

// mimeTypes 文件服务支持的扩展名
var mimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".txt":  "text/plain",
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
}

// MimeTypeByExt 按扩展名取 MIME 类型，未知类型返回 application/octet-stream
func MimeTypeByExt(name string) string {
	if t, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return t
	}
	return "application/octet-stream"
}
