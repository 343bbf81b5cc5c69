package errors

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

func (d Definition) Error() string {
	return d.Message
}

// webhook 相关错误。
var (
	SignatureInvalid = Definition{Code: "SIGNATURE_INVALID", Message: "Webhook signature invalid"}
	PayloadInvalid   = Definition{Code: "PAYLOAD_INVALID", Message: "Webhook payload invalid"}
	Unauthorized     = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
)

// 规则模块错误。
var (
	RuleNotFound        = Definition{Code: "RULE_NOT_FOUND", Message: "Auto-reply rule not found"}
	RuleInvalid         = Definition{Code: "RULE_INVALID", Message: "Auto-reply rule invalid"}
	RuleAccountMismatch = Definition{Code: "RULE_ACCOUNT_MISMATCH", Message: "Rule belongs to another account"}
)

// 回复日志模块错误。
var (
	ReplyLogQueryInvalid = Definition{Code: "REPLY_LOG_QUERY_INVALID", Message: "Reply log query invalid"}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	SignatureInvalid.Code:     SignatureInvalid,
	PayloadInvalid.Code:       PayloadInvalid,
	Unauthorized.Code:         Unauthorized,
	RuleNotFound.Code:         RuleNotFound,
	RuleInvalid.Code:          RuleInvalid,
	RuleAccountMismatch.Code:  RuleAccountMismatch,
	ReplyLogQueryInvalid.Code: ReplyLogQueryInvalid,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}

// SkipMessageError 表示消费者应当跳过（ack 而非重投）的消息。
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return "skip message: " + e.Reason
}
