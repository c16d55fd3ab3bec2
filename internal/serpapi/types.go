package serpapi

// Result is a single organic search result.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// searchResponse is the subset of the SerpAPI payload we consume.
type searchResponse struct {
	SearchMetadata struct {
		Status string `json:"status"`
	} `json:"search_metadata"`
	Error          string `json:"error"`
	OrganicResults []struct {
		Position int    `json:"position"`
		Title    string `json:"title"`
		Snippet  string `json:"snippet"`
		Link     string `json:"link"`
	} `json:"organic_results"`
}
