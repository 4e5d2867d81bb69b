package listings

import (
	"context"

	"homestay/internal/app/outbox"
	"homestay/internal/app/uow"
	domainlistings "homestay/internal/domain/listings"
)

// beginManagedUnit reuses a unit of work from context (the transaction
// middleware case, managed=false) or starts one the handler owns
// (managed=true): the owner commits and rolls back.
func beginManagedUnit(ctx context.Context, factory uow.UoWFactory) (unit uow.UnitOfWork, execCtx context.Context, managed bool, err error) {
	if existing, ok := uow.FromContext(ctx); ok {
		return existing, ctx, false, nil
	}
	if factory == nil {
		return nil, ctx, false, ErrUnitOfWorkNeeded
	}
	unit, err = factory.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return nil, ctx, false, err
	}
	execCtx = ctx
	if injector, ok := unit.(interface {
		InjectContext(context.Context) context.Context
	}); ok {
		execCtx = injector.InjectContext(ctx)
	}
	return unit, uow.ContextWithUnitOfWork(execCtx, unit), true, nil
}

func drainEvents(ctx context.Context, box outbox.Outbox, encoder outbox.EventEncoder, listing *domainlistings.Listing) error {
	pending := listing.PendingEvents()
	listing.ClearEvents()
	return outbox.RecordDomainEvents(ctx, box, encoder, pending)
}
