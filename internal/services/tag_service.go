package services

import (
	"fmt"
	"strings"

	"fintrack/internal/models"
	"fintrack/internal/repositories"
)

// tagService resolves raw comma-separated tag input into tag records.
type tagService struct {
	tagRepo repositories.TagRepositoryInterface
}

// NewTagService creates a new TagServiceInterface instance
func NewTagService(tagRepo repositories.TagRepositoryInterface) TagServiceInterface {
	return &tagService{
		tagRepo: tagRepo,
	}
}

// ParseTagNames normalizes a raw comma-separated tag string: split on
// commas, trim whitespace, lowercase, drop empty tokens, deduplicate
// preserving first-seen order.
func (s *tagService) ParseTagNames(raw string) []string {
	parts := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(parts))
	names := make([]string, 0, len(parts))

	for _, part := range parts {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names
}

// Resolve parses the raw string and get-or-creates each resulting tag.
// Resolving the same input twice yields the same tag set without creating
// duplicate records.
func (s *tagService) Resolve(raw string) ([]models.Tag, error) {
	names := s.ParseTagNames(raw)

	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag, err := s.tagRepo.GetOrCreate(name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tag %q: %w", name, err)
		}
		tags = append(tags, *tag)
	}

	return tags, nil
}
