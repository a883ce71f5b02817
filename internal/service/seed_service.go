package service

import (
	"context"
	"fmt"
	"time"

	"github.com/geekpie/portfolio-backend/internal/models"
	"github.com/geekpie/portfolio-backend/internal/repository"
)

// Учётные данные администратора по умолчанию (только для development).
const (
	SeedAdminEmail    = "admin@geekpie.com"
	SeedAdminPassword = "admin123"
)

// SeedService наполняет базу администратором и примерами проектов.
type SeedService struct {
	userRepo    *repository.UserRepository
	contentRepo *repository.ContentRepository
}

// NewSeedService создаёт новый сервис сидирования.
func NewSeedService(userRepo *repository.UserRepository, contentRepo *repository.ContentRepository) *SeedService {
	return &SeedService{
		userRepo:    userRepo,
		contentRepo: contentRepo,
	}
}

// SeedData пересоздаёт администратора и добавляет примеры опубликованных проектов.
func (s *SeedService) SeedData(ctx context.Context) (*models.User, int, error) {
	// Пересоздаём администратора
	if err := s.userRepo.DeleteByEmail(ctx, SeedAdminEmail); err != nil {
		return nil, 0, fmt.Errorf("seed service: удаление администратора: %w", err)
	}

	passHash, err := HashPassword(SeedAdminPassword)
	if err != nil {
		return nil, 0, err
	}

	admin := &models.User{
		Username:     "admin",
		Email:        SeedAdminEmail,
		PasswordHash: passHash,
		Role:         models.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return nil, 0, fmt.Errorf("seed service: создание администратора: %w", err)
	}

	created := 0
	for _, rec := range sampleProjects() {
		rec := rec
		if err := s.contentRepo.Create(ctx, &rec); err != nil {
			return nil, created, fmt.Errorf("seed service: создание проекта %q: %w", rec.Title, err)
		}
		created++
	}

	return admin, created, nil
}

// sampleProjects возвращает набор демонстрационных проектов.
func sampleProjects() []models.ContentRecord {
	ptr := func(s string) *string { return &s }
	date := func(v string) *time.Time {
		t, _ := time.Parse("2006-01-02", v)
		return &t
	}

	return []models.ContentRecord{
		{
			Kind:        models.KindProject,
			Title:       "Holographic Earpod with Casing Design",
			Description: "A futuristic earpod design featuring holographic elements and premium casing.",
			Category:    models.Category3DDesign,
			Tags:        []string{"3D Design", "Product Design", "Futuristic"},
			Thumbnail:   ptr("/wp-content/uploads/2024/10/image1.webp"),
			Images:      []string{"/wp-content/uploads/2024/10/image1.webp", "/wp-content/uploads/2024/10/image2.webp"},
			Client:      ptr("TechAudio Inc."),
			ProjectDate: date("2024-10-15"),
			ProjectURL:  ptr("https://example.com/earpod"),
			Featured:    true,
			Status:      models.StatusPublished,
			SortOrder:   1,
		},
		{
			Kind:        models.KindProject,
			Title:       "Modern 3D Layout for Dribbble Presentation",
			Description: "A stunning 3D layout design created for Dribbble portfolio presentation.",
			Category:    models.Category3DDesign,
			Tags:        []string{"3D Design", "UI/UX", "Presentation"},
			Thumbnail:   ptr("/wp-content/uploads/2024/10/image2.webp"),
			Images:      []string{"/wp-content/uploads/2024/10/image2.webp"},
			Client:      ptr("Design Studio Pro"),
			ProjectDate: date("2024-11-01"),
			Featured:    true,
			Status:      models.StatusPublished,
			SortOrder:   2,
		},
		{
			Kind:        models.KindProject,
			Title:       "Natura Branding",
			Description: "Complete branding identity for an eco-friendly product line.",
			Category:    models.CategoryBranding,
			Tags:        []string{"Branding", "Identity", "Eco"},
			Thumbnail:   ptr("/wp-content/uploads/2024/10/image3.webp"),
			Client:      ptr("Natura Co."),
			ProjectDate: date("2024-09-20"),
			Status:      models.StatusPublished,
			SortOrder:   3,
		},
	}
}
