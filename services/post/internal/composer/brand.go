package composer

import (
	"context"

	"postcraft/services/post/internal/entity"
)

// Directory serves the templates visible to an identity. loaded is false
// until the first fetch for that identity has completed.
type Directory interface {
	Snapshot(identity entity.Identity) (templates []entity.BrandTemplate, loaded bool)
}

// DirectoryResolver looks the draft's template id up in the caller's
// directory snapshot. A brand is mandatory in this mode.
type DirectoryResolver struct {
	dir Directory
}

func NewDirectoryResolver(dir Directory) *DirectoryResolver {
	return &DirectoryResolver{dir: dir}
}

func (r *DirectoryResolver) Required() bool { return true }

func (r *DirectoryResolver) Resolve(_ context.Context, identity entity.Identity, draft entity.Draft) (*entity.BrandSnapshot, error) {
	if draft.BrandTemplateID == "" {
		return nil, nil
	}
	templates, loaded := r.dir.Snapshot(identity)
	if !loaded {
		return nil, entity.ErrDirectoryLoading
	}
	for _, tpl := range templates {
		if tpl.ID == draft.BrandTemplateID {
			return tpl.Snapshot(), nil
		}
	}
	return nil, nil
}

// InlineResolver uses the brand fields typed into the draft. Brand is optional.
type InlineResolver struct{}

func (InlineResolver) Required() bool { return false }

func (InlineResolver) Resolve(_ context.Context, _ entity.Identity, draft entity.Draft) (*entity.BrandSnapshot, error) {
	if draft.InlineBrand.IsZero() {
		return nil, nil
	}
	brand := *draft.InlineBrand
	brand.TemplateID = ""
	return &brand, nil
}
