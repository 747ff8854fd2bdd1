package ledger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"mint-agent-backend/internal/domain/collection"
)

// Entry points used by each contract family. Only the fragments the mint flow calls
// are declared.

const singleTokenABI = `[
{"type":"function","name":"TOKEN_PRICE","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"TOKEN_PRICE_PRESALE","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"MAX_NFT","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"maxTokensPerTransaction","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"maxMintedPresalePerAddress","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"saleStartTime","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"publicSaleStartTime","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"buyNFTsPublic","stateMutability":"payable","inputs":[{"name":"quantity","type":"uint256"}],"outputs":[]},
{"type":"function","name":"buyNFTsPresale","stateMutability":"payable","inputs":[{"name":"quantity","type":"uint256"},{"name":"proof","type":"bytes32[]"}],"outputs":[]}
]`

const videoABI = `[
{"type":"function","name":"tokenPrice","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"usedExternalID","stateMutability":"view","inputs":[{"name":"externalID","type":"bytes32"}],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"safeMint","stateMutability":"payable","inputs":[{"name":"to","type":"address"},{"name":"quantity","type":"uint256"},{"name":"externalIDs","type":"bytes32[]"},{"name":"salt","type":"uint256"},{"name":"signature","type":"bytes"}],"outputs":[]}
]`

const multiTokenABI = `[
{"type":"function","name":"dataToken","stateMutability":"view","inputs":[{"name":"tokenID","type":"uint256"}],"outputs":[
 {"name":"tokenID","type":"uint256"},{"name":"maxTokensPerTransaction","type":"uint256"},{"name":"tokenPrice","type":"uint256"},
 {"name":"maxSupply","type":"uint256"},{"name":"saleStartTime","type":"uint256"},{"name":"saleEndTime","type":"uint256"},
 {"name":"saleToken","type":"address"},{"name":"active","type":"bool"}]},
{"type":"function","name":"dataTokenPresale","stateMutability":"view","inputs":[{"name":"tokenID","type":"uint256"}],"outputs":[
 {"name":"publicSaleStartTime","type":"uint256"},{"name":"maxMintedPresalePerAddress","type":"uint256"},
 {"name":"tokenPricePresale","type":"uint256"},{"name":"merkleRoot","type":"bytes32"}]},
{"type":"function","name":"buyNFTsPublic","stateMutability":"payable","inputs":[{"name":"tokenID","type":"uint256"},{"name":"quantity","type":"uint256"}],"outputs":[]},
{"type":"function","name":"buyNFTsPresale","stateMutability":"payable","inputs":[{"name":"tokenID","type":"uint256"},{"name":"quantity","type":"uint256"},{"name":"proof","type":"bytes32[]"}],"outputs":[]}
]`

var (
	abiOnce   sync.Once
	abiErr    error
	parsedABI map[string]abi.ABI
)

func parseABIs() {
	parsedABI = make(map[string]abi.ABI, 3)
	for name, src := range map[string]string{
		"single": singleTokenABI,
		"video":  videoABI,
		"multi":  multiTokenABI,
	} {
		parsed, err := abi.JSON(strings.NewReader(src))
		if err != nil {
			abiErr = fmt.Errorf("parse %s abi: %w", name, err)
			return
		}
		parsedABI[name] = parsed
	}
}

// abiFor returns the contract interface of the variant's family.
func abiFor(v collection.Variant) (abi.ABI, error) {
	abiOnce.Do(parseABIs)
	if abiErr != nil {
		return abi.ABI{}, abiErr
	}
	switch v {
	case collection.SingleStandard, collection.SingleWhitelisted, collection.SingleBotGuarded:
		return parsedABI["single"], nil
	case collection.VideoAsset:
		return parsedABI["video"], nil
	case collection.MultiStandard, collection.MultiWhitelisted:
		return parsedABI["multi"], nil
	}
	return abi.ABI{}, fmt.Errorf("no abi for variant %s", v)
}
