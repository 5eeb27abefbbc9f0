package in

import (
	"context"

	rosterdto "mcad/internal/modules/roster/dto"
	rosterin "mcad/internal/modules/roster/port/in"
)

type CLIHandler struct {
	usecase rosterin.Usecase
}

func NewCLIHandler(usecase rosterin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) (rosterdto.ListOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, selector string) (rosterdto.MenteeOutput, error) {
	return h.usecase.Get(ctx, selector)
}

func (h CLIHandler) Add(ctx context.Context, input rosterdto.AddInput) (rosterdto.MutationOutput, error) {
	return h.usecase.Add(ctx, input)
}

func (h CLIHandler) Edit(ctx context.Context, input rosterdto.EditInput) (rosterdto.MutationOutput, error) {
	return h.usecase.Edit(ctx, input)
}

func (h CLIHandler) Remove(ctx context.Context, selector string) (rosterdto.MutationOutput, error) {
	return h.usecase.Remove(ctx, selector)
}

func (h CLIHandler) Refresh(ctx context.Context) (rosterdto.ListOutput, error) {
	return h.usecase.Refresh(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}
