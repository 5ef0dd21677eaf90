package tool

import "github.com/cloudwego/eino/schema"

// Infos describes the callable tool surface for the dialogue orchestrator.
// Every operation is idempotent from the orchestrator's point of view except
// initiatePayment and requestTransfer.
func Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolLookupAccount,
			Desc: "Look up and load the caller's account by reference number.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"reference_number": {Type: schema.String, Desc: "The reference number the caller stated", Required: true},
			}),
		},
		{
			Name: ToolVerifyDateOfBirth,
			Desc: "Verify the caller's stated date of birth against the loaded account. Accepts any reasonable spoken or written format.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"stated_date_of_birth": {Type: schema.String, Desc: "The date of birth as the caller stated it", Required: true},
			}),
		},
		{
			Name: ToolVerifyName,
			Desc: "Verify the caller's stated name against the loaded account. A near match reports the on-file name and asks for a retry.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"stated_name": {Type: schema.String, Desc: "The name as the caller stated it", Required: true},
			}),
		},
		{
			Name: ToolVerifyAddress,
			Desc: "Verify the caller's stated address against the loaded account. Partial addresses are accepted.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"stated_address": {Type: schema.String, Desc: "The address as the caller stated it", Required: true},
			}),
		},
		{
			Name: ToolGetBalance,
			Desc: "Disclose the exact balance due and the client it is owed to. Requires 2-of-3 identity verification.",
		},
		{
			Name: ToolInitiatePayment,
			Desc: "Create a payment intent in EUR for the agreed amount.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"amount": {Type: schema.Number, Desc: "Payment amount in euro, e.g. 322.15", Required: true},
			}),
		},
		{
			Name: ToolCheckPaymentStatus,
			Desc: "Fetch the current gateway status of a payment intent by id.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"payment_intent_id": {Type: schema.String, Desc: "The payment intent id returned by initiatePayment", Required: true},
			}),
		},
		{
			Name: ToolRequestTransfer,
			Desc: "Escalate the live call to a human agent. Returns optimistically; completion is asynchronous.",
		},
	}
}
