package service

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"

	"mint-agent-backend/internal/common/errors"
	"mint-agent-backend/internal/domain/collection"
	"mint-agent-backend/internal/features/mint/models"
)

// Mint runs one mint attempt for quantity tokens and waits for the transaction to
// settle. Every failure is translated; a cancelled attempt returns (nil, nil).
func (k *Kit) Mint(ctx context.Context, quantity uint64) (*types.Receipt, error) {
	attempt := &models.Attempt{
		ID:        uuid.NewString(),
		Variant:   k.target.Variant.String(),
		AssetID:   k.target.AssetID,
		Requested: quantity,
		StartedAt: k.now(),
	}
	if k.wallet != nil {
		attempt.Wallet = k.wallet.Address().Hex()
	}

	receipt, err := k.mint(ctx, attempt)
	translated := errors.Translate(err)
	k.finish(ctx, attempt, err, translated)

	if translated != nil {
		return nil, translated
	}
	if err != nil {
		return nil, nil
	}
	return receipt, nil
}

func (k *Kit) mint(ctx context.Context, a *models.Attempt) (*types.Receipt, error) {
	if a.Requested < 1 {
		return nil, errors.NewValidationError("quantity", "must be at least 1")
	}

	d := k.descriptor
	snap := collection.Evaluate(d, k.now())
	qty := collection.ClampQuantity(a.Requested, snap.PerTxLimit)
	a.Phase = snap.Phase.String()
	a.Quantity = qty

	if qty > snap.PerTxLimit {
		return nil, errors.NewLimitExceeded(snap.PerTxLimit)
	}
	if snap.Phase == collection.Closed {
		return nil, errors.NewSaleNotActive()
	}
	if qty == 0 {
		return nil, errors.NewLimitExceeded(snap.PerTxLimit)
	}

	amount := new(big.Int).Mul(snap.UnitPrice, new(big.Int).SetUint64(qty))
	a.Amount = amount.String()

	tx, err := k.submit(ctx, d, snap.Phase, qty, amount)
	if err != nil {
		return nil, err
	}
	a.TxHash = tx.Hash().Hex()

	k.log.Info().
		Str("attempt_id", a.ID).
		Str("tx_hash", a.TxHash).
		Msg("Mint transaction submitted")

	return k.ledger.WaitMined(ctx, tx)
}

func (k *Kit) submit(ctx context.Context, d collection.Descriptor, phase collection.Phase, qty uint64, amount *big.Int) (*types.Transaction, error) {
	switch d.Variant {
	case collection.VideoAsset:
		return k.submitGuarded(ctx, qty, amount)
	case collection.SingleStandard, collection.MultiStandard:
		return k.ledger.MintPublic(ctx, qty, d.AssetID, amount)
	case collection.SingleWhitelisted, collection.SingleBotGuarded, collection.MultiWhitelisted:
		if phase == collection.Presale {
			return k.submitPresale(ctx, d, qty, amount)
		}
		return k.ledger.MintPublic(ctx, qty, d.AssetID, amount)
	}
	return nil, errors.NewUnsupportedVariant(d.Variant.String())
}

func (k *Kit) submitPresale(ctx context.Context, d collection.Descriptor, qty uint64, amount *big.Int) (*types.Transaction, error) {
	if k.wallet == nil {
		return nil, errMissingProvider
	}
	if k.resolver == nil {
		return nil, errors.NewNotWhitelisted("no allow-list configured")
	}
	proof, err := k.resolver.Resolve(ctx, k.wallet.Address())
	if err != nil {
		return nil, err
	}
	if len(proof) == 0 {
		return nil, errors.NewNotWhitelisted("")
	}
	return k.ledger.MintPresale(ctx, qty, proof, d.AssetID, amount)
}

func (k *Kit) submitGuarded(ctx context.Context, qty uint64, amount *big.Int) (*types.Transaction, error) {
	if k.wallet == nil {
		return nil, errMissingProvider
	}
	if k.authorizer == nil {
		return nil, errors.NewProofSigningFailed("signing service not configured")
	}
	wallet := k.wallet.Address()
	auth, err := k.authorizer.Authorize(ctx, wallet, k.target.AssetID)
	if err != nil {
		return nil, err
	}
	if auth.Message != "" {
		if isVariantMismatch(auth.Message) {
			return nil, errors.NewUnsupportedVariant(k.target.Variant.String()).WithDetail("reason", auth.Message)
		}
		return nil, errors.NewProofSigningFailed(auth.Message)
	}
	req, err := auth.GuardedMint(wallet, qty)
	if err != nil {
		return nil, errors.NewProofSigningFailed(err.Error())
	}
	return k.ledger.MintGuarded(ctx, req, amount)
}

func isVariantMismatch(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "not supported contract type") ||
		strings.Contains(lower, "unsupported contract type")
}

// finish logs the attempt outcome and appends it to the journal.
func (k *Kit) finish(ctx context.Context, a *models.Attempt, raw, translated error) {
	a.Duration = k.now().Sub(a.StartedAt)
	switch {
	case translated != nil:
		a.Status = models.AttemptFailed
		a.Error = translated.Error()
		if appErr, ok := errors.AsAppError(translated); ok {
			a.ErrorCode = string(appErr.Code)
			a.Error = appErr.Message
		}
	case raw != nil:
		a.Status = models.AttemptCancelled
	default:
		a.Status = models.AttemptSucceeded
	}

	event := k.log.Info()
	if a.Status == models.AttemptFailed {
		event = k.log.Warn().Str("error_code", a.ErrorCode).Str("error", a.Error)
	}
	event.
		Str("attempt_id", a.ID).
		Str("wallet", a.Wallet).
		Str("variant", a.Variant).
		Str("phase", a.Phase).
		Uint64("requested", a.Requested).
		Uint64("quantity", a.Quantity).
		Str("amount", a.Amount).
		Str("tx_hash", a.TxHash).
		Str("status", string(a.Status)).
		Dur("duration", a.Duration).
		Msg("Mint attempt finished")

	if k.journal == nil {
		return
	}
	if err := k.journal.Record(context.WithoutCancel(ctx), a); err != nil {
		k.log.Error().Err(err).Str("attempt_id", a.ID).Msg("Failed to journal mint attempt")
	}
}
