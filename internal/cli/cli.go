// Package cli implements the line-oriented command surface for the order
// book: a thin collaborator whose only contract with the matching core is
// the exported operations of orderbook.Engine and a fixed response
// grammar, one line in and one line out per command.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/clement-fischer/limitbook/internal/orderbook"
)

// Dispatch parses one line of input and applies it to book, returning the
// response text for the caller to print. Unrecognized commands return
// "Invalid command".
func Dispatch(book *orderbook.Engine, line string) string {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return ""
	}

	switch tokens[0] {
	case "order":
		return orderCommand(book, tokens)
	case "cancel":
		return cancelCommand(book, tokens)
	case "amend":
		return amendCommand(book, tokens)
	case "q":
		return queryCommand(book, tokens)
	default:
		return "Invalid command"
	}
}

const orderUsage = "Usage: order <order_id> <buy|sell> <quantity> <price>"

func orderCommand(book *orderbook.Engine, tokens []string) string {
	if len(tokens) != 5 {
		return orderUsage
	}

	id, err := strconv.ParseInt(tokens[1], 10, 64)
	if err != nil {
		return orderUsage
	}

	var side orderbook.Side
	switch tokens[2] {
	case "buy":
		side = orderbook.Buy
	case "sell":
		side = orderbook.Sell
	default:
		return orderUsage
	}

	quantity, err := strconv.ParseInt(tokens[3], 10, 64)
	if err != nil {
		return orderUsage
	}

	price, err := strconv.ParseFloat(tokens[4], 64)
	if err != nil {
		return orderUsage
	}

	if book.Add(id, side, quantity, price) {
		return "Order added"
	}
	return "Order rejected"
}

func cancelCommand(book *orderbook.Engine, tokens []string) string {
	if len(tokens) != 2 {
		return "Usage: cancel <order_id>"
	}

	id, err := strconv.ParseInt(tokens[1], 10, 64)
	if err != nil {
		return "Usage: cancel <order_id>"
	}

	if book.Cancel(id) {
		return "Order cancelled"
	}
	return "Order not cancelled"
}

func amendCommand(book *orderbook.Engine, tokens []string) string {
	if len(tokens) != 3 {
		return "Usage: amend <order_id> <quantity>"
	}

	id, err := strconv.ParseInt(tokens[1], 10, 64)
	if err != nil {
		return "Usage: amend <order_id> <quantity>"
	}

	quantity, err := strconv.ParseInt(tokens[2], 10, 64)
	if err != nil {
		return "Usage: amend <order_id> <quantity>"
	}

	if book.Amend(id, quantity) {
		return "Order amended"
	}
	return "Order not amended"
}

const queryUsage = "Usage: q <level|order> ..."

func queryCommand(book *orderbook.Engine, tokens []string) string {
	if len(tokens) < 2 {
		return queryUsage
	}

	switch tokens[1] {
	case "level":
		return queryLevelCommand(book, tokens)
	case "order":
		return queryOrderCommand(book, tokens)
	default:
		return queryUsage
	}
}

func queryLevelCommand(book *orderbook.Engine, tokens []string) string {
	usage := "Usage: q level <bid|ask> <depth>"
	if len(tokens) != 4 {
		return usage
	}

	var side orderbook.Side
	switch tokens[2] {
	case "bid":
		side = orderbook.Buy
	case "ask":
		side = orderbook.Sell
	default:
		return usage
	}

	depth, err := strconv.Atoi(tokens[3])
	if err != nil {
		return usage
	}

	result := book.QueryDepth(side, depth)
	return formatDepth(result)
}

// queryOrderCommand requires exactly 3 tokens ("q", "order", "<id>").
func queryOrderCommand(book *orderbook.Engine, tokens []string) string {
	usage := "Usage: q order <order_id>"
	if len(tokens) != 3 {
		return usage
	}

	id, err := strconv.ParseInt(tokens[2], 10, 64)
	if err != nil {
		return usage
	}

	view := book.QueryOrder(id)
	return formatOrder(view)
}

func formatDepth(d orderbook.DepthResult) string {
	sideStr := "bid"
	if d.Side == orderbook.Sell {
		sideStr = "ask"
	}
	return fmt.Sprintf("%s, %d, %v, %v, %v", sideStr, d.Depth, d.Price, d.SumLeft, d.NItems)
}

func formatOrder(v orderbook.OrderView) string {
	if !v.HasOrder {
		return "null, 0, 0, 0, -1, null"
	}
	return fmt.Sprintf("%v, %v, %v, %v, %v, %v",
		v.Side, v.Price, v.Quantity, v.Left, v.Position, v.Status)
}
