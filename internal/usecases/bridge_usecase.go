package usecases

import (
	"context"
	"encoding/json"
	"math/big"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"lusdt-bridge.backend/internal/domain/entities"
	domainerrors "lusdt-bridge.backend/internal/domain/errors"
	"lusdt-bridge.backend/internal/domain/repositories"
	"lusdt-bridge.backend/internal/infrastructure/blockchain"
	"lusdt-bridge.backend/pkg/logger"
	"lusdt-bridge.backend/pkg/metrics"
)

const timeoutReason = "observation window expired"

const notifyTimeout = 10 * time.Second

// BridgeUsecase owns the bridge transaction lifecycle: validation, fee
// pricing, chain submission and the status transitions observed afterwards.
type BridgeUsecase struct {
	txRepo   repositories.BridgeTransactionRepository
	volume   repositories.VolumeAccumulator
	fees     *FeeUsecase
	guard    *Guard
	clients  *blockchain.ClientFactory
	signer   blockchain.Signer
	notifier blockchain.Notifier
	destTxs  blockchain.DestinationTxSource
	networks map[string]entities.Network

	// vaultAddress holds locked USDT on Solana; bridgeAccount is the mint
	// authority on Lunes whose balance mirrors circulating LUSDT.
	vaultAddress  string
	bridgeAccount string
}

// NewBridgeUsecase creates a new bridge usecase
func NewBridgeUsecase(
	txRepo repositories.BridgeTransactionRepository,
	volume repositories.VolumeAccumulator,
	fees *FeeUsecase,
	guard *Guard,
	clients *blockchain.ClientFactory,
	signer blockchain.Signer,
	notifier blockchain.Notifier,
	destTxs blockchain.DestinationTxSource,
	vaultAddress, bridgeAccount string,
) *BridgeUsecase {
	return &BridgeUsecase{
		txRepo:        txRepo,
		volume:        volume,
		fees:          fees,
		guard:         guard,
		clients:       clients,
		signer:        signer,
		notifier:      notifier,
		destTxs:       destTxs,
		networks:      entities.DefaultNetworks(),
		vaultAddress:  vaultAddress,
		bridgeAccount: bridgeAccount,
	}
}

type transferPayload struct {
	Asset  string `json:"asset"`
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
	Memo   string `json:"memo"`
}

// InitiateDeposit locks USDT on Solana so LUSDT can be minted on Lunes.
// Validation runs strictly before submission; a validation failure leaves no
// record behind.
func (u *BridgeUsecase) InitiateDeposit(ctx context.Context, params entities.DepositParams) (*entities.BridgeTransaction, error) {
	if err := u.guard.AssertActive(); err != nil {
		return nil, err
	}

	amount, err := ParseAmount(params.Amount)
	if err != nil {
		return nil, err
	}
	if err := u.networks[entities.NetworkLunes].ValidateAddress(params.DestinationAddress); err != nil {
		return nil, err
	}

	srcClient, err := u.clients.Get(entities.NetworkSolana)
	if err != nil {
		return nil, err
	}
	destClient, err := u.clients.Get(entities.NetworkLunes)
	if err != nil {
		return nil, err
	}

	balance, err := srcClient.GetBalance(ctx, "USDT", params.SourceAddress)
	if err != nil {
		return nil, err
	}
	if balance.Cmp(amount) < 0 {
		return nil, domainerrors.Wrap(domainerrors.ErrInsufficientBalance,
			"address %s holds %s, deposit needs %s", params.SourceAddress, balance, amount)
	}

	quote, err := u.fees.Quote(ctx, amount)
	if err != nil {
		return nil, err
	}

	// The net amount is what will be minted on Lunes once the lock confirms.
	vaultBalance, err := srcClient.GetBalance(ctx, "USDT", u.vaultAddress)
	if err != nil {
		return nil, err
	}
	mintedSupply, err := destClient.GetBalance(ctx, "LUSDT", u.bridgeAccount)
	if err != nil {
		return nil, err
	}
	backing := new(big.Int).Add(vaultBalance, quote.NetAmount)
	if err := u.guard.AssertBackingInvariant(quote.NetAmount, backing, mintedSupply); err != nil {
		return nil, err
	}

	memo := params.DestinationAddress
	if params.Memo != "" {
		memo += entities.MemoDelimiter + params.Memo
	}

	srcTxHash, err := u.submitSigned(ctx, srcClient, transferPayload{
		Asset:  "USDT",
		From:   params.SourceAddress,
		To:     u.vaultAddress,
		Amount: amount.String(),
		Memo:   memo,
	})
	if err != nil {
		return nil, err
	}

	tx := &entities.BridgeTransaction{
		ID:                 uuid.New(),
		Type:               entities.BridgeTypeDeposit,
		Status:             entities.BridgeStatusPending,
		Amount:             amount.String(),
		Fee:                quote.FeeAmount.String(),
		FeeBps:             quote.FeeBps,
		SourceNetwork:      entities.NetworkSolana,
		DestinationNetwork: entities.NetworkLunes,
		SourceAddress:      params.SourceAddress,
		DestinationAddress: params.DestinationAddress,
		Memo:               memo,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
	tx.SourceTxHash.SetValid(srcTxHash)

	if err := u.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	u.notify(tx)

	logger.Info(ctx, "deposit initiated",
		zap.String("id", tx.ID.String()),
		zap.String("amount", tx.Amount),
		zap.Int("feeBps", tx.FeeBps),
		zap.String("sourceTxHash", srcTxHash))
	return tx, nil
}

// InitiateRedemption burns LUSDT on Lunes so USDT can be released from the
// Solana vault.
func (u *BridgeUsecase) InitiateRedemption(ctx context.Context, params entities.RedemptionParams) (*entities.BridgeTransaction, error) {
	if err := u.guard.AssertActive(); err != nil {
		return nil, err
	}

	if !params.FeeType.Valid() {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidFeeType, "fee type %q", params.FeeType)
	}
	amount, err := ParseAmount(params.Amount)
	if err != nil {
		return nil, err
	}
	if err := u.networks[entities.NetworkSolana].ValidateAddress(params.DestinationAddress); err != nil {
		return nil, err
	}

	srcClient, err := u.clients.Get(entities.NetworkLunes)
	if err != nil {
		return nil, err
	}

	balance, err := srcClient.GetBalance(ctx, "LUSDT", params.SourceAddress)
	if err != nil {
		return nil, err
	}
	if balance.Cmp(amount) < 0 {
		return nil, domainerrors.Wrap(domainerrors.ErrInsufficientBalance,
			"address %s holds %s, redemption needs %s", params.SourceAddress, balance, amount)
	}

	quote, err := u.fees.Quote(ctx, amount)
	if err != nil {
		return nil, err
	}

	memo := params.DestinationAddress
	srcTxHash, err := u.submitSigned(ctx, srcClient, transferPayload{
		Asset:  "LUSDT",
		From:   params.SourceAddress,
		To:     u.bridgeAccount,
		Amount: amount.String(),
		Memo:   memo,
	})
	if err != nil {
		return nil, err
	}

	tx := &entities.BridgeTransaction{
		ID:                 uuid.New(),
		Type:               entities.BridgeTypeRedemption,
		Status:             entities.BridgeStatusPending,
		Amount:             amount.String(),
		Fee:                quote.FeeAmount.String(),
		FeeBps:             quote.FeeBps,
		FeeType:            params.FeeType,
		SourceNetwork:      entities.NetworkLunes,
		DestinationNetwork: entities.NetworkSolana,
		SourceAddress:      params.SourceAddress,
		DestinationAddress: params.DestinationAddress,
		Memo:               memo,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
	tx.SourceTxHash.SetValid(srcTxHash)

	if err := u.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	u.notify(tx)

	logger.Info(ctx, "redemption initiated",
		zap.String("id", tx.ID.String()),
		zap.String("amount", tx.Amount),
		zap.String("feeType", string(params.FeeType)),
		zap.String("sourceTxHash", srcTxHash))
	return tx, nil
}

// submitSigned obtains the account holder's signature, then submits the
// transfer. A rejection or signer outage surfaces before anything is persisted.
func (u *BridgeUsecase) submitSigned(ctx context.Context, client blockchain.ChainClient, p transferPayload) (string, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	// The signing service delivers the signature material to the bridge node
	// out of band; this call carries only the account holder's approval.
	if _, err := u.signer.Sign(ctx, payload, p.From); err != nil {
		return "", err
	}
	amount, _ := new(big.Int).SetString(p.Amount, 10)
	return client.SubmitTransfer(ctx, p.Asset, p.From, p.To, amount, p.Memo)
}

// notify pushes the new transaction to the coordinator. The initiator never
// waits on the coordinator: delivery runs detached, failures are counted and
// logged, never propagated.
func (u *BridgeUsecase) notify(tx *entities.BridgeTransaction) {
	if u.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := u.notifier.Notify(ctx, tx); err != nil {
			metrics.NotifyFailures.Inc()
			logger.Warn(ctx, "coordinator notification failed",
				zap.String("id", tx.ID.String()),
				zap.Error(err))
		}
	}()
}

// GetTransaction returns one transaction by id.
func (u *BridgeUsecase) GetTransaction(ctx context.Context, id uuid.UUID) (*entities.BridgeTransaction, error) {
	return u.txRepo.GetByID(ctx, id)
}

// ListTransactions returns transactions newest first, optionally filtered by
// source address.
func (u *BridgeUsecase) ListTransactions(ctx context.Context, address string, limit, offset int) ([]*entities.BridgeTransaction, int, error) {
	return u.txRepo.List(ctx, address, limit, offset)
}

// RefreshStatus polls the chains for the transaction's current lifecycle
// position and applies any transition it observes. Returns the refreshed
// transaction. Poll errors are retryable; the record keeps its last state.
func (u *BridgeUsecase) RefreshStatus(ctx context.Context, id uuid.UUID) (*entities.BridgeTransaction, error) {
	tx, err := u.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.Status.Terminal() {
		return tx, nil
	}

	switch tx.Status {
	case entities.BridgeStatusPending:
		if err := u.refreshPending(ctx, tx); err != nil {
			return nil, err
		}
	case entities.BridgeStatusProcessing:
		if err := u.refreshProcessing(ctx, tx); err != nil {
			return nil, err
		}
	}
	return u.txRepo.GetByID(ctx, id)
}

func (u *BridgeUsecase) refreshPending(ctx context.Context, tx *entities.BridgeTransaction) error {
	if !tx.SourceTxHash.Valid {
		return nil
	}
	client, err := u.clients.Get(tx.SourceNetwork)
	if err != nil {
		return err
	}
	status, err := client.GetConfirmationStatus(ctx, tx.SourceTxHash.String)
	if err != nil {
		metrics.StatusCheckFailures.Inc()
		return err
	}
	switch status {
	case blockchain.ConfirmationConfirmed:
		return u.transition(ctx, tx.ID, entities.BridgeStatusPending, entities.BridgeStatusProcessing, "")
	case blockchain.ConfirmationRejected:
		return u.Fail(ctx, tx.ID, entities.BridgeStatusPending, "source transaction rejected")
	}
	return nil
}

func (u *BridgeUsecase) refreshProcessing(ctx context.Context, tx *entities.BridgeTransaction) error {
	if !tx.DestTxHash.Valid {
		if u.destTxs == nil {
			return nil
		}
		hash, err := u.destTxs.GetDestinationTransaction(ctx, tx.ID)
		if err != nil {
			metrics.StatusCheckFailures.Inc()
			return err
		}
		if hash == "" {
			// Coordinator has not minted or released yet.
			return nil
		}
		if err := u.AttachDestinationTransaction(ctx, tx.ID, hash); err != nil {
			return err
		}
		tx.DestTxHash.SetValid(hash)
	}
	client, err := u.clients.Get(tx.DestinationNetwork)
	if err != nil {
		return err
	}
	status, err := client.GetConfirmationStatus(ctx, tx.DestTxHash.String)
	if err != nil {
		metrics.StatusCheckFailures.Inc()
		return err
	}
	switch status {
	case blockchain.ConfirmationConfirmed:
		return u.Complete(ctx, tx.ID)
	case blockchain.ConfirmationRejected:
		return u.Fail(ctx, tx.ID, entities.BridgeStatusProcessing, "destination transaction rejected")
	}
	return nil
}

// Complete moves a processing transaction to completed and credits its amount
// to the monthly volume. The compare-and-swap on the status row guarantees
// two concurrent observers credit the volume exactly once.
func (u *BridgeUsecase) Complete(ctx context.Context, id uuid.UUID) error {
	err := u.transition(ctx, id, entities.BridgeStatusProcessing, entities.BridgeStatusCompleted, "")
	if err != nil {
		return err
	}

	tx, err := u.txRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	// USDT is the unit of account, so the settled amount is the USD volume.
	amount, ok := new(big.Int).SetString(tx.Amount, 10)
	if !ok || !amount.IsInt64() {
		metrics.VolumeCreditFailures.Inc()
		logger.Error(ctx, "volume credit skipped, amount not representable",
			zap.String("id", id.String()),
			zap.String("amount", tx.Amount))
	} else if err := u.volume.Add(ctx, amount.Int64()); err != nil {
		metrics.VolumeCreditFailures.Inc()
		logger.Error(ctx, "volume credit failed",
			zap.String("id", id.String()),
			zap.Error(err))
	}
	logger.Info(ctx, "transaction completed", zap.String("id", id.String()))
	return nil
}

// Fail moves a transaction from its expected current status to failed.
func (u *BridgeUsecase) Fail(ctx context.Context, id uuid.UUID, from entities.BridgeTransactionStatus, reason string) error {
	return u.transition(ctx, id, from, entities.BridgeStatusFailed, reason)
}

// Cancel aborts a transaction that has not started processing yet.
func (u *BridgeUsecase) Cancel(ctx context.Context, id uuid.UUID) error {
	tx, err := u.txRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tx.Status.Terminal() {
		return domainerrors.Wrap(domainerrors.ErrAlreadyTerminal, "transaction %s is %s", id, tx.Status)
	}
	return u.transition(ctx, id, entities.BridgeStatusPending, entities.BridgeStatusCancelled, "")
}

// AttachDestinationTransaction records the destination chain hash once the
// coordinator has minted or released funds.
func (u *BridgeUsecase) AttachDestinationTransaction(ctx context.Context, id uuid.UUID, txHash string) error {
	return u.txRepo.UpdateDestTxHash(ctx, id, txHash)
}

// MarkObservationTimeout fails a transaction whose observation window
// expired. The timeout says observation stopped, not that the chain rejected
// anything; the reason string records that distinction.
func (u *BridgeUsecase) MarkObservationTimeout(ctx context.Context, id uuid.UUID) error {
	tx, err := u.txRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tx.Status.Terminal() {
		return nil
	}
	return u.transition(ctx, id, tx.Status, entities.BridgeStatusFailed, timeoutReason)
}

func (u *BridgeUsecase) transition(ctx context.Context, id uuid.UUID, from, to entities.BridgeTransactionStatus, reason string) error {
	if err := u.txRepo.UpdateStatusFrom(ctx, id, from, to, reason); err != nil {
		return err
	}
	if to.Terminal() {
		metrics.TransactionsByStatus.WithLabelValues(string(to)).Inc()
	}
	return nil
}
