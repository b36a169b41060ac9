// Package bitget is a client for the Bitget REST and websocket APIs.
//
// Every REST call goes through one pipeline: parameters are canonically
// encoded, the request is signed with HMAC-SHA256, sent once over a shared
// HTTP client and the response is classified. A 2xx body carrying a Bitget
// error envelope becomes an *core.ExchangeError; transport failures and
// non-2xx statuses become *core.TransportError.
//
//	client, err := bitget.New(core.DefaultConfig().WithCredentials(creds))
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	account, err := client.GetAccount(ctx, bitget.AccountRequest{
//		Symbol:     "BTCUSDT_UMCBL",
//		MarginCoin: "USDT",
//	})
//
// Bitget API Documentation: https://www.bitget.com/api-doc/common/intro
package bitget
