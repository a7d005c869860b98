package creator

import "context"

type CreatorRepository interface {
	Create(ctx context.Context, c Creator) (Creator, error)
	GetByID(ctx context.Context, id string) (Creator, error)
	Update(ctx context.Context, req UpdateCreatorRequest) error
	List(ctx context.Context) ([]Creator, error)
}

// CreatorService defines business logic for creator account management
type CreatorService interface {
	CreateCreator(ctx context.Context, req CreateCreatorRequest) (CreatorResponse, error)
	GetCreator(ctx context.Context, id string) (CreatorResponse, error)
	UpdateCreator(ctx context.Context, req UpdateCreatorRequest) (CreatorResponse, error)
	ListCreators(ctx context.Context) ([]CreatorResponse, error)
}
