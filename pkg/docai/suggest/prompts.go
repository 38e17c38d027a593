package suggest

// Target schema for form autofill. Kept short and explicit so the model
// maps extracted values onto a fixed set of field names.
const autofillSchema = `[
  {"name": "full_name", "type": "string"},
  {"name": "email", "type": "string"},
  {"name": "phone", "type": "string"},
  {"name": "company", "type": "string"},
  {"name": "address", "type": "string"},
  {"name": "date", "type": "string (YYYY-MM-DD)"},
  {"name": "amount", "type": "string"},
  {"name": "reference_number", "type": "string"}
]`

const summaryPrompt = `Summarize the following document for a busy professional. Two to four sentences, plain language, lead with what the document is and what it asks of the reader.

Document text:
%s

Extracted fields (JSON):
%s`

const autofillPrompt = `Given the document data below, fill the target form. Respond with ONLY this JSON object, no prose:
{"formMapping": {"<field_name>": "<value or null>"}, "confidence": <0..1>, "missingFields": ["<field_name>", ...]}

Target form fields:
` + autofillSchema + `

Document summary:
%s

Extracted fields (JSON):
%s`

const emailPrompt = `Draft a short, professional email responding to or forwarding the document below. Respond with ONLY this JSON object, no prose:
{"subject": "<subject line>", "body": "<email body>"}

Document summary:
%s

Extracted fields (JSON):
%s`

const tasksPrompt = `List the follow-up tasks this document implies (payments due, replies needed, deadlines). Respond with ONLY this JSON object, no prose:
{"tasks": [{"title": "<short title>", "description": "<one sentence>", "priority": "<low|medium|high>", "dueDate": "<YYYY-MM-DD or empty>"}]}

Document summary:
%s

Extracted fields (JSON):
%s`
