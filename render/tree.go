package render

// The widget does not paint anything itself: it hands the host rendering
// surface a declarative tree of presentation primitives and the host decides
// how to draw them. Node is one primitive in that tree.

type Kind string

const (
	KindBlockStack    Kind = "BlockStack"
	KindInlineLayout  Kind = "InlineLayout"
	KindHeading       Kind = "Heading"
	KindText          Kind = "Text"
	KindImage         Kind = "Image"
	KindButton        Kind = "Button"
	KindBanner        Kind = "Banner"
	KindDivider       Kind = "Divider"
	KindSkeletonImage Kind = "SkeletonImage"
	KindSkeletonText  Kind = "SkeletonText"
)

type Node struct {
	Kind     Kind                   `json:"kind"`
	Props    map[string]interface{} `json:"props,omitempty"`
	Children []Node                 `json:"children,omitempty"`
}

func BlockStack(props map[string]interface{}, children ...Node) Node {
	return Node{Kind: KindBlockStack, Props: props, Children: children}
}

func InlineLayout(props map[string]interface{}, children ...Node) Node {
	return Node{Kind: KindInlineLayout, Props: props, Children: children}
}

func Heading(text string) Node {
	return Node{Kind: KindHeading, Props: map[string]interface{}{"text": text}}
}

func Text(text string, props map[string]interface{}) Node {
	if props == nil {
		props = map[string]interface{}{}
	}
	props["text"] = text
	return Node{Kind: KindText, Props: props}
}

func Image(source string) Node {
	return Node{Kind: KindImage, Props: map[string]interface{}{"source": source}}
}

func Button(label string, props map[string]interface{}) Node {
	if props == nil {
		props = map[string]interface{}{}
	}
	props["label"] = label
	return Node{Kind: KindButton, Props: props}
}

func Banner(status, title string) Node {
	return Node{Kind: KindBanner, Props: map[string]interface{}{"status": status, "title": title}}
}

func Divider() Node {
	return Node{Kind: KindDivider}
}

func SkeletonImage() Node {
	return Node{Kind: KindSkeletonImage}
}

func SkeletonText(props map[string]interface{}) Node {
	return Node{Kind: KindSkeletonText, Props: props}
}
