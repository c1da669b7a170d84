package markdown

// defaultHandlers builds the tag table every Converter starts from.
func defaultHandlers() map[string]Handler {
	h := map[string]Handler{
		"p":          paragraph{},
		"blockquote": blockquote{},
		"pre":        codeBlock{},
		"hr":         rule{},

		"ul": list{},
		"ol": list{},
		"li": listItem{},

		"em":     wrap{"*", "*"},
		"b":      wrap{"**", "**"},
		"strong": wrap{"**", "**"},
		"s":      wrap{"~~", "~~"},
		"code":   wrap{"`", "`"},
		"mark":   wrap{"==", "=="},
		"u":      wrap{"<u>", "</u>"},
		"a":      link{},
		"span":   span{},
	}
	for level := 1; level <= 6; level++ {
		h[headingTag(level)] = heading{level: level}
	}
	return h
}

func headingTag(level int) string {
	return "h" + string(rune('0'+level))
}
