package lein

import "regexp"

// argPattern matches a bare word, a double-quoted string or a single-quoted string.
var argPattern = regexp.MustCompile(`[^\s"']+|"([^"]*)"|'([^']*)'`)

// SplitArgs tokenizes a task command line. Quotes group words and are stripped;
// there is no escaping.
func SplitArgs(task string) []string {
	var args []string
	for _, m := range argPattern.FindAllStringSubmatchIndex(task, -1) {
		switch {
		case m[2] >= 0:
			args = append(args, task[m[2]:m[3]])
		case m[4] >= 0:
			args = append(args, task[m[4]:m[5]])
		default:
			args = append(args, task[m[0]:m[1]])
		}
	}
	return args
}
