package unitofwork

import (
	"context"

	"ai-quickdoc-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	PassageRepository() contract.PassageRepository
}
