package service

import "strings"

// Greeting is the first message of every conversation
const Greeting = "Hello! I'm your AI Contract Assistant. I can help you create, review, and customize legal contracts. What type of contract would you like to work on today?"

type replyRule struct {
	keyword string
	reply   string
}

// replyRules are checked in order; the first keyword found wins
var replyRules = []replyRule{
	{
		keyword: "create",
		reply: "I'll help you create that contract. A good starting point is our Oil & Gas Service Agreement template, " +
			"which already covers Scope of Work, Safety Requirements, Payment Terms and HSE Compliance. " +
			"Tell me the parties, the contract value and the term, and I'll prepare a first draft with the essential clauses.",
	},
	{
		keyword: "review",
		reply: "I can review your contract section by section. Upload it in the Documents panel and I'll flag " +
			"unfilled placeholders such as [DATE] or [AMOUNT], missing information and clauses that need a closer legal look.",
	},
	{
		keyword: "error",
		reply: "I found 3 issues in the current draft: the contract date is not specified in the Parties section, " +
			"the payment amount placeholder is not filled, and a dispute resolution clause is recommended. " +
			"Open the editor to resolve them, or use auto-fill for the standard clauses.",
	},
	{
		keyword: "template",
		reply: "The template library has agreements for Service Agreements, Consulting, Maintenance and Legal. " +
			"The most downloaded one is the Non-Disclosure Agreement (NDA). Which category fits your needs?",
	},
	{
		keyword: "upload",
		reply: "You can upload PDF, DOC, DOCX or TXT files in the Documents panel. Once a file is uploaded " +
			"I'll analyze it and list the parties, detected sections and key terms I find.",
	},
}

const fallbackReply = "I can help you with:\n" +
	"- Creating a new contract from a template\n" +
	"- Reviewing an existing contract\n" +
	"- Finding errors and missing information in a draft\n" +
	"- Browsing the template library\n" +
	"- Uploading documents for analysis\n" +
	"What would you like to do?"

// ComposeReply picks the canned assistant reply for a user message
func ComposeReply(input string) string {
	lower := strings.ToLower(input)
	for _, rule := range replyRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.reply
		}
	}
	return fallbackReply
}
