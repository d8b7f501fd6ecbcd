package news

import "strings"

// similarThreshold is the title ratio above which two headlines are
// treated as the same story.
const similarThreshold = 0.85

// SimilarTitles reports whether two headlines tell the same story.
// Bulletins assembled from overlapping feeds use it to drop rewrites
// of an item they already carry.
func SimilarTitles(a, b string) bool {
	return TitleSimilarity(a, b) > similarThreshold
}

// TitleSimilarity returns a 0..1 similarity ratio between two titles,
// case-insensitive: 1 minus the edit distance normalized by the longer
// title.
func TitleSimilarity(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

func levenshtein(ra, rb []rune) int {
	lenA, lenB := len(ra), len(rb)
	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	dp := make([][]int, lenA+1)
	for i := range dp {
		dp[i] = make([]int, lenB+1)
		dp[i][0] = i
	}
	for j := 0; j <= lenB; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= lenA; i++ {
		for j := 1; j <= lenB; j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			dp[i][j] = min3(
				dp[i-1][j]+1,      // deletion
				dp[i][j-1]+1,      // insertion
				dp[i-1][j-1]+cost, // substitution
			)
		}
	}
	return dp[lenA][lenB]
}

func min3(x, y, z int) int {
	if y < x {
		x = y
	}
	if z < x {
		x = z
	}
	return x
}
