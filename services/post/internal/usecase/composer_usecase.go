package usecase

import (
	"context"

	"postcraft/pkg/logger"
	"postcraft/services/post/internal/composer"
	"postcraft/services/post/internal/entity"
)

type BrandTemplateList struct {
	Templates     []entity.BrandTemplate `json:"templates"`
	Loading       bool                   `json:"loading"`
	BrandRequired bool                   `json:"brand_required"`
}

type ComposerUseCase interface {
	CreateSession(identity entity.Identity) composer.View
	GetSession(id string, identity entity.Identity) (composer.View, error)
	UpdateDraft(id string, identity entity.Identity, edit composer.DraftEdit) (composer.View, error)
	TogglePlatform(id string, identity entity.Identity, platform string) (composer.View, error)
	ImproveWriting(id string, identity entity.Identity) (uint64, error)
	GenerateImage(ctx context.Context, id string, identity entity.Identity) (*composer.Generation, error)
	Submit(ctx context.Context, id string, identity entity.Identity) (*entity.Post, error)
	CloseSession(id string, identity entity.Identity) error
	BrandTemplates(ctx context.Context, identity entity.Identity, refresh bool) (*BrandTemplateList, error)
}

type composerUseCase struct {
	composer  *composer.Composer
	sessions  *SessionTable
	directory *BrandDirectory
	logger    *logger.Logger
}

// NewComposerUseCase wires the session table to the directory. directory may
// be nil when brands are typed inline.
func NewComposerUseCase(c *composer.Composer, sessions *SessionTable, directory *BrandDirectory, logger *logger.Logger) ComposerUseCase {
	return &composerUseCase{
		composer:  c,
		sessions:  sessions,
		directory: directory,
		logger:    logger,
	}
}

func (uc *composerUseCase) CreateSession(identity entity.Identity) composer.View {
	s := uc.sessions.Create(identity)
	if uc.directory != nil && uc.composer.BrandRequired() {
		uc.directory.Snapshot(identity)
	}
	uc.logger.Info("[COMPOSER] Session %s mounted for user %s", s.ID(), identity.UserID)
	return s.Snapshot()
}

func (uc *composerUseCase) GetSession(id string, identity entity.Identity) (composer.View, error) {
	s, err := uc.sessions.Get(id, identity)
	if err != nil {
		return composer.View{}, err
	}
	return s.Drain(), nil
}

func (uc *composerUseCase) UpdateDraft(id string, identity entity.Identity, edit composer.DraftEdit) (composer.View, error) {
	s, err := uc.sessions.Get(id, identity)
	if err != nil {
		return composer.View{}, err
	}
	if err := s.Update(edit); err != nil {
		return composer.View{}, err
	}
	return s.Snapshot(), nil
}

func (uc *composerUseCase) TogglePlatform(id string, identity entity.Identity, platform string) (composer.View, error) {
	p, err := entity.ParsePlatform(platform)
	if err != nil {
		return composer.View{}, err
	}
	s, err := uc.sessions.Get(id, identity)
	if err != nil {
		return composer.View{}, err
	}
	if _, err := s.TogglePlatform(p); err != nil {
		return composer.View{}, err
	}
	return s.Snapshot(), nil
}

func (uc *composerUseCase) ImproveWriting(id string, identity entity.Identity) (uint64, error) {
	s, err := uc.sessions.Get(id, identity)
	if err != nil {
		return 0, err
	}
	return s.ImproveWriting()
}

func (uc *composerUseCase) GenerateImage(ctx context.Context, id string, identity entity.Identity) (*composer.Generation, error) {
	s, err := uc.sessions.Get(id, identity)
	if err != nil {
		return nil, err
	}
	return s.GenerateImage(ctx)
}

func (uc *composerUseCase) Submit(ctx context.Context, id string, identity entity.Identity) (*entity.Post, error) {
	s, err := uc.sessions.Get(id, identity)
	if err != nil {
		return nil, err
	}
	return s.Submit(ctx)
}

func (uc *composerUseCase) CloseSession(id string, identity entity.Identity) error {
	return uc.sessions.Remove(id, identity)
}

func (uc *composerUseCase) BrandTemplates(ctx context.Context, identity entity.Identity, refresh bool) (*BrandTemplateList, error) {
	list := &BrandTemplateList{
		Templates:     []entity.BrandTemplate{},
		BrandRequired: uc.composer.BrandRequired(),
	}
	if uc.directory == nil {
		return list, nil
	}

	if refresh {
		templates, err := uc.directory.Refresh(ctx, identity)
		if err != nil {
			return nil, err
		}
		list.Templates = templates
		return list, nil
	}

	templates, loaded := uc.directory.Snapshot(identity)
	list.Loading = !loaded
	if loaded {
		list.Templates = templates
	}
	return list, nil
}
