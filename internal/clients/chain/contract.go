// Package chain writes and reads token URIs on the Vertical contract.
package chain

//go:generate mockgen -destination=mock/mock_contract.go -package=mockchain -source=contract.go

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	apperrors "github.com/KirkDiggler/vertical-mint/internal/errors"
)

const (
	DefaultRPCURL         = "https://mainnet.base.org"
	defaultReceiptTimeout = 2 * time.Minute
)

// tokenURIABI covers the two metadata methods of the Vertical contract
const tokenURIABI = `[
	{"type":"function","name":"setTokenURI","stateMutability":"nonpayable",
	 "inputs":[{"name":"tokenId","type":"uint256"},{"name":"_tokenURI","type":"string"}],"outputs":[]},
	{"type":"function","name":"tokenURI","stateMutability":"view",
	 "inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"string"}]}
]`

// Contract is the slice of the Vertical contract the pipeline needs
type Contract interface {
	// SetTokenURI sends the transaction and waits for it to be mined. It
	// returns the transaction hash.
	SetTokenURI(ctx context.Context, tokenID uint64, uri string) (string, error)
	TokenURI(ctx context.Context, tokenID uint64) (string, error)
}

type Config struct {
	RPCURL          string
	ContractAddress string
	PrivateKey      string
	// ChainID skips the eth_chainId lookup when set
	ChainID        int64
	ReceiptTimeout time.Duration
	Backend        Backend
	Logger         *zap.Logger
}

type contract struct {
	address        common.Address
	backend        Backend
	bound          *bind.BoundContract
	key            *ecdsa.PrivateKey
	chainID        *big.Int
	receiptTimeout time.Duration
	logger         *zap.Logger
}

// Dial connects to the RPC endpoint unless a Backend is supplied
func Dial(ctx context.Context, cfg *Config) (Contract, error) {
	if cfg == nil {
		return nil, apperrors.MissingParam("cfg")
	}
	if cfg.ContractAddress == "" {
		return nil, apperrors.MissingParam("cfg.ContractAddress")
	}
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, apperrors.InvalidParam("contract address " + cfg.ContractAddress)
	}
	if cfg.PrivateKey == "" {
		return nil, apperrors.MissingParam("cfg.PrivateKey")
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, apperrors.InvalidParam("private key is not a hex secp256k1 key")
	}

	backend := cfg.Backend
	if backend == nil {
		rpcURL := cfg.RPCURL
		if rpcURL == "" {
			rpcURL = DefaultRPCURL
		}
		client, err := ethclient.DialContext(ctx, rpcURL)
		if err != nil {
			return nil, errors.Wrapf(err, "failed on dial %s", rpcURL)
		}
		backend = client
	}

	chainID := big.NewInt(cfg.ChainID)
	if cfg.ChainID == 0 {
		chainID, err = backend.ChainID(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed on get chain id")
		}
	}

	parsed, err := abi.JSON(strings.NewReader(tokenURIABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed on parse contract abi")
	}

	address := common.HexToAddress(cfg.ContractAddress)
	c := &contract{
		address:        address,
		backend:        backend,
		bound:          bind.NewBoundContract(address, parsed, backend, backend, backend),
		key:            key,
		chainID:        chainID,
		receiptTimeout: cfg.ReceiptTimeout,
		logger:         cfg.Logger,
	}
	if c.receiptTimeout <= 0 {
		c.receiptTimeout = defaultReceiptTimeout
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	return c, nil
}

func (c *contract) SetTokenURI(ctx context.Context, tokenID uint64, uri string) (string, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(c.key, c.chainID)
	if err != nil {
		return "", errors.Wrap(err, "failed on create transactor")
	}
	opts.Context = ctx

	tx, err := c.bound.Transact(opts, "setTokenURI", new(big.Int).SetUint64(tokenID), uri)
	if err != nil {
		return "", errors.Wrap(err, "failed on send setTokenURI")
	}

	c.logger.Info("setTokenURI sent",
		zap.Uint64("token_id", tokenID),
		zap.String("tx_hash", tx.Hash().Hex()))

	waitCtx, cancel := context.WithTimeout(ctx, c.receiptTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, c.backend, tx)
	if err != nil {
		return tx.Hash().Hex(), errors.Wrapf(err, "failed on wait for %s", tx.Hash().Hex())
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return tx.Hash().Hex(), errors.Errorf("setTokenURI transaction %s reverted", tx.Hash().Hex())
	}

	return tx.Hash().Hex(), nil
}

func (c *contract) TokenURI(ctx context.Context, tokenID uint64) (string, error) {
	var out []interface{}
	err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, "tokenURI", new(big.Int).SetUint64(tokenID))
	if err != nil {
		return "", errors.Wrap(err, "failed on call tokenURI")
	}
	if len(out) == 0 {
		return "", errors.New("tokenURI returned nothing")
	}

	return *abi.ConvertType(out[0], new(string)).(*string), nil
}
