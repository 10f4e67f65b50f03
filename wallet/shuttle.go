package wallet

// Network is the destination network of a transfer. Cross-chain transfers
// go through a shuttle bridge contract: the coins are sent to the bridge
// address and the real recipient rides in the memo.
type Network string

const (
	NetworkTerra    Network = "Terra"
	NetworkEthereum Network = "Ethereum"
	NetworkBSC      Network = "Binance Smart Chain"
)

var shuttles = map[string]map[Network]string{
	"mainnet": {
		NetworkEthereum: "terra13yxhrk08qvdf5zdc9ss5mwsg5sf7zva9xrgwgc",
		NetworkBSC:      "terra1g6llg3zed35nd3mh9zx6n64tfw3z67w2c48tn2",
	},
	"testnet": {
		NetworkEthereum: "terra10a29fyas9768pw8mewdrar3kzr07jz8f3n73t3",
		NetworkBSC:      "terra1paav7jul3dzwzv78j0k59glmevttnkfgmgzv2r",
	},
}

// ShuttleAddress returns the bridge address for a destination network on
// the named chain. ok is false for NetworkTerra and for networks without a
// bridge.
func ShuttleAddress(chainName string, network Network) (string, bool) {
	address, ok := shuttles[chainName][network]
	return address, ok && address != ""
}
