package storage

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// PublicPrefix префикс публичных URL загруженных файлов.
const PublicPrefix = "/uploads/"

// UploadStorage отвечает за файловое хранилище загружаемых изображений.
// Все файлы лежат в одном каталоге, имена вида project-<время>-<случайное>.<ext>.
type UploadStorage struct {
	rootPath       string
	maxUploadBytes int64
}

// NewUploadStorage создаёт файловое хранилище.
func NewUploadStorage(rootPath string, maxUploadMB int64) (*UploadStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &UploadStorage{
		rootPath:       rootPath,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// RootPath возвращает каталог хранилища. Генератор синхронизирует его
// с каталогом uploads статического сайта.
func (s *UploadStorage) RootPath() string {
	return s.rootPath
}

// Save сохраняет файл и возвращает публичный путь вида /uploads/<имя>.
func (s *UploadStorage) Save(ctx context.Context, prefix, originalName string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	ext := strings.ToLower(filepath.Ext(sanitizeFilename(originalName)))
	fileName := fmt.Sprintf("%s-%d-%d%s", prefix, time.Now().UnixMilli(), rand.Int63n(1_000_000_000), ext)

	targetPath := filepath.Join(s.rootPath, fileName)
	tempPath := targetPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return "", 0, fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	defer f.Close()

	limitedReader := io.LimitedReader{R: r, N: s.maxUploadBytes + 1}
	written, err := io.Copy(f, &limitedReader)
	if err != nil {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("storage: ошибка записи файла: %w", err)
	}

	if written > s.maxUploadBytes {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("storage: размер файла превышает лимит %d байт", s.maxUploadBytes)
	}

	if err := f.Close(); err != nil {
		return "", 0, fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		return "", 0, fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return PublicPrefix + fileName, written, nil
}

// Delete удаляет файл по его публичному пути. Отсутствующий файл не ошибка.
func (s *UploadStorage) Delete(ctx context.Context, publicPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name := path.Base(publicPath)
	if name == "." || name == "/" {
		return nil
	}

	target := filepath.Join(s.rootPath, name)
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}

// sanitizeFilename удаляет потенциально опасные символы.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" {
		name = "image"
	}
	return name
}
