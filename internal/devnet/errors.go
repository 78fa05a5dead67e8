package devnet

import (
	"net/http"

	"evtc/internal/handler/response"
)

// 节点与钱包返回的错误类型
var (
	errParse              = response.APIError{Status: http.StatusBadRequest, Code: 4000000, Name: "parse_error_exception", What: "Parse Error"}
	errUnknownBlock       = response.APIError{Status: http.StatusInternalServerError, Code: 3100002, Name: "unknown_block_exception", What: "Unknown block"}
	errUnknownTransaction = response.APIError{Status: http.StatusInternalServerError, Code: 3100003, Name: "unknown_transaction_exception", What: "Unknown transaction"}
	errPackedTransaction  = response.APIError{Status: http.StatusInternalServerError, Code: 3010010, Name: "packed_transaction_type_exception", What: "Invalid packed transaction"}
	errExpired            = response.APIError{Status: http.StatusInternalServerError, Code: 3040005, Name: "expired_tx_exception", What: "Expired Transaction"}
	errExpirationTooFar   = response.APIError{Status: http.StatusInternalServerError, Code: 3040006, Name: "tx_exp_too_far_exception", What: "Transaction Expiration Too Far"}
	errInvalidRefBlock    = response.APIError{Status: http.StatusInternalServerError, Code: 3040007, Name: "invalid_ref_block_exception", What: "Invalid Reference Block"}
	errDuplicate          = response.APIError{Status: http.StatusInternalServerError, Code: 3040008, Name: "tx_duplicate", What: "Duplicate transaction"}
	errUnsatisfied        = response.APIError{Status: http.StatusInternalServerError, Code: 3090003, Name: "unsatisfied_authorization", What: "Provided keys, permissions, and delays do not satisfy declared authorizations"}
	errActionValidate     = response.APIError{Status: http.StatusInternalServerError, Code: 3050003, Name: "action_validate_exception", What: "Action validate exception"}
	errUnknownDomain      = response.APIError{Status: http.StatusInternalServerError, Code: 3120001, Name: "unknown_domain_exception", What: "Unknown domain"}
	errUnknownToken       = response.APIError{Status: http.StatusInternalServerError, Code: 3120002, Name: "unknown_token_exception", What: "Unknown token"}
	errUnknownGroup       = response.APIError{Status: http.StatusInternalServerError, Code: 3120003, Name: "unknown_group_exception", What: "Unknown group"}
	errUnknownAccount     = response.APIError{Status: http.StatusInternalServerError, Code: 3120004, Name: "unknown_account_exception", What: "Unknown account"}

	errWalletExists      = response.APIError{Status: http.StatusInternalServerError, Code: 3130001, Name: "wallet_exist_exception", What: "Wallet already exists"}
	errWalletNonexistent = response.APIError{Status: http.StatusInternalServerError, Code: 3130002, Name: "wallet_nonexistent_exception", What: "Nonexistent wallet"}
	errWalletLocked      = response.APIError{Status: http.StatusInternalServerError, Code: 3130003, Name: "wallet_locked_exception", What: "Locked wallet"}
	errWalletMissingKey  = response.APIError{Status: http.StatusInternalServerError, Code: 3130004, Name: "wallet_missing_pub_key_exception", What: "Missing public key"}
	errWalletPassword    = response.APIError{Status: http.StatusInternalServerError, Code: 3130005, Name: "wallet_invalid_password_exception", What: "Invalid wallet password"}
	errWalletKeyExists   = response.APIError{Status: http.StatusInternalServerError, Code: 3130006, Name: "key_exist_exception", What: "Key already exists"}
	errPrivateKey        = response.APIError{Status: http.StatusInternalServerError, Code: 3010003, Name: "private_key_type_exception", What: "Invalid private key"}
)
