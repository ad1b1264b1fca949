package recipe

import "sort"

// CollectToolsAndMethods 彙整所有步驟用到的工具與方法，去重後排序
func CollectToolsAndMethods(steps []Step) (tools []string, methods []string) {
	toolSet := make(map[string]struct{})
	methodSet := make(map[string]struct{})
	for _, s := range steps {
		for _, t := range s.Tools {
			toolSet[t] = struct{}{}
		}
		for _, m := range s.Methods {
			methodSet[m] = struct{}{}
		}
	}
	return sortedKeys(toolSet), sortedKeys(methodSet)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
