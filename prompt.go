package commitsuggest

// PromptTemplate is the fixed instruction placed before the aggregate diff text.
const PromptTemplate = "Given the following git diffs, generate concise, present-tense commit messages in a single line. " +
	"If multiple distinct changes are detected, provide separate commit messages for each. Use the conventional " +
	"git style, summarizing what the changes do (e.g., 'Add', 'Update', 'Fix', 'Remove'). Avoid past tense, " +
	"and aim for clarity in a single line per commit. Return the results formatted in HTML.\n\nGit Diffs:\n"

// BuildPrompt returns the full prompt for the given aggregate diff text.
// The result depends only on aggregate.
func BuildPrompt(aggregate string) string {
	return PromptTemplate + aggregate
}
