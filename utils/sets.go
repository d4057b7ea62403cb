package utils

// Intersect 求两个切片的交集，保持 a 的顺序，结果去重。
// 用于共同好友和共同喜欢的电影查询。
func Intersect[T comparable](a, b []T) []T {
	inB := make(map[T]struct{}, len(b))
	for _, v := range b {
		inB[v] = struct{}{}
	}

	seen := make(map[T]struct{}, len(a))
	result := make([]T, 0)
	for _, v := range a {
		if _, ok := inB[v]; !ok {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
