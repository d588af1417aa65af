package pathutil_test

import (
	"fmt"

	"intl-news-desk/internal/handler/http/pathutil"
)

func ExampleNormalizePath() {
	fmt.Println(pathutil.NormalizePath("/api/aggregate"))
	fmt.Println(pathutil.NormalizePath("/api/feed.rss?column=middle"))
	fmt.Println(pathutil.NormalizePath("/wp-login.php"))

	// Output:
	// /api/aggregate
	// /api/feed.rss
	// /other
}
