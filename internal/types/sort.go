package types

import "sort"

func sortStrings(ss []string) { sort.Strings(ss) }
