// Package chat defines the shape of an AI assistant chat export.
//
// A chat export is an open-ended JSON object. Only a handful of fields are
// recognized:
//
//	{
//	  "requesterUsername": "octocat",
//	  "responderUsername": "GitHub Copilot",
//	  "requests": [
//	    {"requestId": "req-1", "isCanceled": false, "followups": [], "result": {...}}
//	  ]
//	}
//
// Document and Record are plain maps so that decoded JSON can be used as-is.
// Accessors never panic on missing or mistyped keys; they report "absent"
// through a second boolean result instead:
//
//	doc, ok := chat.AsDocument(decoded)
//	if !ok {
//		// null, primitive or sequence at the top level
//	}
//	name, ok := doc.String(chat.FieldRequesterUsername)
package chat
