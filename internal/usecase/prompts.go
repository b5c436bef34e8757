package usecase

import (
	"fmt"

	"github.com/shoplens/backend/internal/domain"
)

// filterQueryPrompt describes the catalog schema and asks for a filter/projection pair
// inside a fenced json block.
const filterQueryPrompt = `You are tasked with generating a MongoDB query based on a user query.
The query should be based on a product schema with the following fields:
  - _id (UUID)
  - actual_price (String, formatted with commas, e.g., '2,999')
  - average_rating (String)
  - brand (String)
  - category (String)
  - crawled_at (String)
  - description (String)
  - discount (String)
  - images (Array of Strings, optional)
  - out_of_stock (Boolean, optional)
  - pid (String)
  - product_details (Array of objects with specific keys, optional)
  - seller (String)
  - selling_price (String)
  - sub_category (String)
  - title (String)
  - url (String)
Generate a MongoDB query that:
- Applies filters on the fields based on the user query.
- Specifies the fields to return in the result (projection).
- The projection must only include field inclusion/exclusion (1 or 0).
- Do not include aggregation expressions (e.g., $substr, $cond) in the projection.
- The actual_price field must be treated as a string in both the filter and projection.
- The out_of_stock field must be a boolean (true or false).
Format the response as a single JSON object with two keys, "filter" and "projection",
inside one fenced code block that starts with ` + "```json" + ` and ends with ` + "```" + `.
Do not include explanations or additional text.
Here is the user query: %s`

const keywordListPrompt = `Extract the following details from the user query:
1. Colors (comma-separated list)
2. Item types (comma-separated list)
If multiple item types are mentioned, include all of them.
If no specific item type is mentioned, return 'all'.
Answer with exactly two lines in the form:
Colors: <colors>
Item Types: <item types>
User query: %s`

const singleItemPrompt = `Extract the colors and item type from the user query.
Return the colors as a comma-separated list and the item type as a single word.
If no item type is mentioned, return 'all'.
Answer with exactly two lines in the form:
Colors: <colors>
Item Type: <item type>
User query: %s`

// BuildPrompt renders the fixed instruction for mode around the raw user query
func BuildPrompt(mode domain.SearchMode, query string) string {
	switch mode {
	case domain.ModeKeywords:
		return fmt.Sprintf(keywordListPrompt, query)
	case domain.ModeKeyword:
		return fmt.Sprintf(singleItemPrompt, query)
	default:
		return fmt.Sprintf(filterQueryPrompt, query)
	}
}
