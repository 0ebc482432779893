package constant

// KnowledgeFallbackAnswer is returned verbatim when the guide has no
// material for a question.
const KnowledgeFallbackAnswer = "I'm sorry, I couldn't find specific information about that in the loan guide."
