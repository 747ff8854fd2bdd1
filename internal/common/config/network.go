package config

// Network describes a chain the agent can mint on.
type Network struct {
	ChainID          int64
	Name             string
	CurrencySymbol   string
	CurrencyDecimals int
	ExplorerURL      string
}

var Networks = map[int64]Network{
	1: {
		ChainID:          1,
		Name:             "Mainnet",
		CurrencySymbol:   "ETH",
		CurrencyDecimals: 18,
		ExplorerURL:      "https://www.etherscan.io/",
	},
	4: {
		ChainID:          4,
		Name:             "Rinkeby",
		CurrencySymbol:   "ETH",
		CurrencyDecimals: 18,
		ExplorerURL:      "https://rinkeby.etherscan.io/",
	},
}

// Network returns the configured chain.
func (c *Config) Network() Network {
	return Networks[c.Chain.ChainID]
}
