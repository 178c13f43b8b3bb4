package feed

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"giftshop/internal/domain/catalog"
)

// Site metadata stamped into the RSS channel header.
const (
	channelTitle       = "Emirates Gifts"
	channelLink        = "https://emirates-gifts.example.com"
	channelDescription = "Luxury gifts, watches and perfumes delivered across the UAE"
)

// WriteJSON emits the canonical product array, the shape the
// storefront itself consumes.
func WriteJSON(w io.Writer, products []catalog.Product) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(products); err != nil {
		return fmt.Errorf("encode json feed: %w", err)
	}
	return nil
}

// WriteCSV emits one row per product for spreadsheet imports.
func WriteCSV(w io.Writer, products []catalog.Product) error {
	cw := csv.NewWriter(w)

	header := []string{"id", "title", "price", "sale_price", "effective_price", "image_link", "category"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, p := range products {
		salePrice := ""
		if p.SalePrice > 0 {
			salePrice = formatPrice(p.SalePrice)
		}
		row := []string{
			p.ID,
			p.Title,
			formatPrice(p.Price),
			salePrice,
			formatPrice(p.EffectivePrice()),
			p.ImageURL,
			p.Category,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv feed: %w", err)
	}
	return nil
}

type rssFeed struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	NS      string   `xml:"xmlns:g,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	ID          string `xml:"g:id"`
	Title       string `xml:"title"`
	Price       string `xml:"g:price"`
	SalePrice   string `xml:"g:sale_price,omitempty"`
	ImageLink   string `xml:"g:image_link,omitempty"`
	ProductType string `xml:"g:product_type,omitempty"`
	Condition   string `xml:"g:condition"`
}

// WriteXML emits a Google Merchant style RSS feed. Prices carry the
// AED currency suffix the merchant format expects.
func WriteXML(w io.Writer, products []catalog.Product) error {
	items := make([]rssItem, 0, len(products))
	for _, p := range products {
		item := rssItem{
			ID:          p.ID,
			Title:       p.Title,
			Price:       merchantPrice(p.Price),
			ImageLink:   p.ImageURL,
			ProductType: p.Category,
			Condition:   "new",
		}
		if p.SalePrice > 0 {
			item.SalePrice = merchantPrice(p.SalePrice)
		}
		items = append(items, item)
	}

	feed := rssFeed{
		Version: "2.0",
		NS:      "http://base.google.com/ns/1.0",
		Channel: channel{
			Title:       channelTitle,
			Link:        channelLink,
			Description: channelDescription,
			Items:       items,
		},
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write xml header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(feed); err != nil {
		return fmt.Errorf("encode xml feed: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close xml encoder: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func merchantPrice(v float64) string {
	return formatPrice(v) + " AED"
}
