package token

import "github.com/David200308/crypto-price-mcp-server/pkg/chain"

// staticTable lists well-known tokens per chain. Native coin symbols
// map to their wrapped form so DEX adapters can quote them directly.
var staticTable = map[int64]map[string]Record{
	chain.IDEthereum: {
		"ETH":  {Address: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", Decimals: 18, Name: "Wrapped Ether"},
		"WETH": {Address: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", Decimals: 18, Name: "Wrapped Ether"},
		"WBTC": {Address: "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599", Decimals: 8, Name: "Wrapped BTC"},
		"USDC": {Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Decimals: 6, Name: "USD Coin"},
		"USDT": {Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7", Decimals: 6, Name: "Tether USD"},
		"DAI":  {Address: "0x6B175474E89094C44Da98b954EedeAC495271d0F", Decimals: 18, Name: "Dai Stablecoin"},
		"LINK": {Address: "0x514910771AF9Ca656af840dff83E8264EcF986CA", Decimals: 18, Name: "ChainLink Token"},
		"UNI":  {Address: "0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984", Decimals: 18, Name: "Uniswap"},
		"AAVE": {Address: "0x7Fc66500c84A76Ad7e9c93437bFc5Ac33E2DDaE9", Decimals: 18, Name: "Aave Token"},
		"PEPE": {Address: "0x6982508145454Ce325dDbE47a25d4ec3d2311933", Decimals: 18, Name: "Pepe"},
		"SHIB": {Address: "0x95aD61b0a150d79219dCF64E1E6Cc01f0B64C4cE", Decimals: 18, Name: "SHIBA INU"},
	},
	chain.IDBSC: {
		"BNB":  {Address: "0xbb4CdB9CBd36B01bD1cBaEF60aF814a3f6F0Ee75", Decimals: 18, Name: "Wrapped BNB"},
		"WBNB": {Address: "0xbb4CdB9CBd36B01bD1cBaEF60aF814a3f6F0Ee75", Decimals: 18, Name: "Wrapped BNB"},
		"ETH":  {Address: "0x2170Ed0880ac9A755fd29B2688956BD959F933F8", Decimals: 18, Name: "Binance-Peg Ethereum"},
		"BTCB": {Address: "0x7130d2A12B9BCbFAe4f2634d864A1Ee1Ce3Ead9c", Decimals: 18, Name: "Binance-Peg BTCB"},
		"USDT": {Address: "0x55d398326f99059fF775485246999027B3197955", Decimals: 18, Name: "Binance-Peg USDT"},
		"USDC": {Address: "0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d", Decimals: 18, Name: "Binance-Peg USD Coin"},
		"BUSD": {Address: "0xe9e7CEA3DedcA5984780Bafc599bD69ADd087D56", Decimals: 18, Name: "Binance-Peg BUSD"},
		"CAKE": {Address: "0x0E09FaBB73Bd3Ade0a17ECC321fD13a19e81cE82", Decimals: 18, Name: "PancakeSwap Token"},
	},
	chain.IDPolygon: {
		"MATIC":  {Address: "0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270", Decimals: 18, Name: "Wrapped Matic"},
		"WMATIC": {Address: "0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270", Decimals: 18, Name: "Wrapped Matic"},
		"WETH":   {Address: "0x7ceB23fD6bC0adD59E62ac25578270cFf1b9f619", Decimals: 18, Name: "Wrapped Ether"},
		"USDC":   {Address: "0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174", Decimals: 6, Name: "USD Coin (PoS)"},
		"USDT":   {Address: "0xc2132D05D31c914a87C6611C10748AEb04B58e8F", Decimals: 6, Name: "Tether USD (PoS)"},
	},
	chain.IDArbitrum: {
		"ETH":  {Address: "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1", Decimals: 18, Name: "Wrapped Ether"},
		"WETH": {Address: "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1", Decimals: 18, Name: "Wrapped Ether"},
		"USDC": {Address: "0xaf88d065e77c8cC2239327C5EDb3A432268e5831", Decimals: 6, Name: "USD Coin"},
		"USDT": {Address: "0xFd086bC7CD5C481DCC9C85ebE478A1C0b69FCbb9", Decimals: 6, Name: "Tether USD"},
		"ARB":  {Address: "0x912CE59144191C1204E64559FE8253a0e49E6548", Decimals: 18, Name: "Arbitrum"},
	},
	chain.IDBase: {
		"ETH":  {Address: "0x4200000000000000000000000000000000000006", Decimals: 18, Name: "Wrapped Ether"},
		"WETH": {Address: "0x4200000000000000000000000000000000000006", Decimals: 18, Name: "Wrapped Ether"},
		"USDC": {Address: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", Decimals: 6, Name: "USD Coin"},
	},
	chain.IDSolana: {
		"SOL":  {Address: "So11111111111111111111111111111111111111112", Decimals: 9, Name: "Wrapped SOL"},
		"WSOL": {Address: "So11111111111111111111111111111111111111112", Decimals: 9, Name: "Wrapped SOL"},
		"USDC": {Address: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", Decimals: 6, Name: "USD Coin"},
		"USDT": {Address: "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB", Decimals: 6, Name: "USDT"},
		"RAY":  {Address: "4k3Dyjzvzp8eMZWUXbBCjEvwSkkk59S5iCNLY3QrkX6R", Decimals: 6, Name: "Raydium"},
		"JUP":  {Address: "JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN", Decimals: 6, Name: "Jupiter"},
		"BONK": {Address: "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263", Decimals: 5, Name: "Bonk"},
	},
}

// Static looks up symbol in the built-in table. Returned records are
// complete and verified.
func Static(symbol string, chainID int64) (*Record, bool) {
	symbol = NormalizeSymbol(symbol)
	byChain, ok := staticTable[chainID]
	if !ok {
		return nil, false
	}
	rec, ok := byChain[symbol]
	if !ok {
		return nil, false
	}
	rec.Symbol = symbol
	rec.ChainID = chainID
	rec.SourceName = "static"
	rec.Verified = true
	return &rec, true
}
