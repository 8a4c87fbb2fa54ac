package hypertext

import (
	"fmt"
	"strconv"
)

// PageData carries the request-scoped state the shell renders: who is signed
// in, the current login nonce, and the cart size.
type PageData struct {
	InstanceVersion string
	SignInClientID  string
	LoginCode       string
	UserEmail       string
	UserName        string
	CartCount       int
}

// Shell wraps page bodies in the shared storefront header and footer.
type Shell struct {
	signInURL string
	scope     string
}

func NewShell(signInURL, scope string) *Shell {
	return &Shell{
		signInURL: signInURL,
		scope:     scope,
	}
}

// Wrap produces a complete HTML document around the given page body.
func (s *Shell) Wrap(data PageData, body string) string {
	var b Builder

	b.Raw("<!DOCTYPE html>")
	b.Open("html")
	b.Open("head")
	s.head(&b, data)
	b.Close("head")
	b.Open("body")
	s.header(&b, data)
	b.Raw(body)
	s.footer(&b)
	b.Close("body")
	b.Close("html")

	return b.String()
}

func (s *Shell) head(b *Builder, data PageData) {
	b.JSLink("https://code.jquery.com/jquery-3.4.1.min.js")
	b.CSSLink("/static/css/default.css?v=" + data.InstanceVersion)
	b.CSSLink("/static/css/awesomefonts.css?v=" + data.InstanceVersion)
	b.CSSLink("https://fonts.googleapis.com/icon?family=Material+Icons+Outlined")
	b.JSLink("/static/js/default.js?v=" + data.InstanceVersion)
	b.JSLink("/static/js/awesomefonts.js?v=" + data.InstanceVersion)

	b.Meta(Attr{Key: "name", Value: "viewport"}, Attr{Key: "content", Value: "width=device-width, initial-scale=1"})
	b.Meta(Attr{Key: "http-equiv", Value: "Content-Security-Policy"}, Attr{Key: "content", Value: "form-action 'self'"})
}

func (s *Shell) header(b *Builder, data PageData) {
	b.Open("div", ID("action"))
	b.Close("div")

	b.Open("div", ID("dialog"), Class("dialog centered widget"))
	b.Open("div", Class("dialogContent"))
	b.Close("div")
	b.Close("div")

	b.Open("div", ID("header"))
	b.Open("div", Class("clear"))

	b.Open("div", Class("floatleft atom"))
	b.Open("a", Href("/"))
	b.Void("img", Src("/static/images/logo.svg"), Style("width:200px; height: 200px;"), Attr{Key: "alt", Value: "Awesome Fonts"})
	b.Close("a")
	b.Close("div")

	b.Open("div", Class("floatright"))
	if data.UserEmail != "" {
		b.Open("span", Class("link"))
		b.Text(data.UserEmail)
		b.Close("span")
		b.Open("span", Class("link"))
		b.Open("a", Href("/account"))
		b.Raw(`<span class="material-icons-outlined">account_circle</span> Account`)
		b.Close("a")
		b.Close("span")
		b.Open("span", Class("link"))
		b.Open("a", OnClick("logout();"))
		b.Raw(`<span class="material-icons-outlined">logout</span> Log Out`)
		b.Close("a")
		b.Close("span")
	} else {
		b.Open("span", Class("link"))
		b.Open("a", OnClick(fmt.Sprintf(
			"login('%s', '%s', window.location.href, '%s', '%s')",
			s.signInURL, data.SignInClientID, s.scope, data.LoginCode,
		)))
		b.Raw(`<span class="material-icons-outlined">login</span> Sign In with Type.World`)
		b.Close("a")
		b.Close("span")
	}

	// cart indicator
	b.Open("span", Class("link"), Style("margin-top: 15px;"))
	b.Open("a", Href("/cart"))
	b.Raw(`<span class="material-icons-outlined">shopping_cart</span> Cart`)
	b.Close("a")
	if data.CartCount > 0 {
		b.Open("span", Class("cartindicator"))
		b.Text(strconv.Itoa(data.CartCount))
		b.Close("span")
	}
	b.Close("span")

	b.Close("div") // .floatright
	b.Close("div") // .clear
	b.Close("div") // header

	b.Open("div", ID("stage"))
}

func (s *Shell) footer(b *Builder) {
	b.Close("div") // stage
}
