package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// Разрешённые типы файлов для загрузки
var allowedMimeTypes = map[string]bool{
	"image/jpeg":    true,
	"image/jpg":     true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// Разрешённые расширения файлов
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// openValidatedImage открывает файл и проверяет, что это изображение:
// по расширению и по магическим байтам. Возвращает открытый файл
// с позицией в начале.
func openValidatedImage(file *multipart.FileHeader) (multipart.File, error) {
	if file.Size == 0 {
		return nil, fmt.Errorf("файл не может быть пустым")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("неподдерживаемый формат файла. Разрешены: %s", strings.Join(listAllowedExtensions(), ", "))
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл: %w", err)
	}

	// Читаем первые 512 байт для проверки магических байтов
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		src.Close()
		return nil, fmt.Errorf("не удалось прочитать файл")
	}

	kind, err := filetype.Match(buffer[:n])
	if err != nil || kind == filetype.Unknown {
		src.Close()
		return nil, fmt.Errorf("не удалось определить тип файла. Разрешены только изображения")
	}

	contentType := kind.MIME.Value
	if !allowedMimeTypes[contentType] {
		src.Close()
		return nil, fmt.Errorf("неподдерживаемый тип файла (%s)", contentType)
	}

	// Проверяем, что расширение соответствует реальному типу файла.
	// .jpg и .jpeg - это одно и то же
	expectedExt := "." + kind.Extension
	if ext != expectedExt && !(ext == ".jpg" && expectedExt == ".jpeg") && !(ext == ".jpeg" && expectedExt == ".jpg") {
		src.Close()
		return nil, fmt.Errorf("расширение файла (%s) не соответствует реальному типу (%s)", ext, expectedExt)
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		src.Close()
		return nil, fmt.Errorf("не удалось сбросить позицию файла")
	}

	return src, nil
}

// listAllowedExtensions возвращает список разрешённых расширений.
func listAllowedExtensions() []string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, ext)
	}
	return exts
}
