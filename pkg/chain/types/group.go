package types

import (
	"encoding/json"
	"fmt"

	"evtc/pkg/crypto_util"
	"evtc/pkg/keys"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/hashicorp/go-multierror"
)

// MaxGroupDepth 根节点深度为 1
const MaxGroupDepth = 8

// GroupIDFromKey 由 group 的管理公钥确定性地派生 group id
func GroupIDFromKey(pk keys.PublicKey) string {
	sum := crypto_util.SHA256(pk[:])
	return base58.Encode(sum[:16])
}

// ValidGroupID 判断字符串是否为 16 字节的 base58 group id
func ValidGroupID(id string) bool {
	return len(base58.Decode(id)) == 16
}

// NodeKind GroupNode 的变体标签
type NodeKind int

const (
	NodeInvalid NodeKind = iota
	NodeKey              // 叶子：一个公钥
	NodeBranch           // 嵌套子组：threshold + 子节点
)

// GroupNode group 树的节点。叶子只设置 Key，分支只设置 Threshold 和 Nodes。
type GroupNode struct {
	Threshold uint32
	Weight    uint32
	Key       keys.PublicKey
	Nodes     []*GroupNode
}

func KeyNode(pk keys.PublicKey, weight uint32) *GroupNode {
	return &GroupNode{Key: pk, Weight: weight}
}

func BranchNode(threshold, weight uint32, nodes ...*GroupNode) *GroupNode {
	return &GroupNode{Threshold: threshold, Weight: weight, Nodes: nodes}
}

func (n *GroupNode) Kind() NodeKind {
	switch {
	case n == nil:
		return NodeInvalid
	case len(n.Nodes) > 0 && n.Key.IsZero():
		return NodeBranch
	case len(n.Nodes) == 0 && !n.Key.IsZero() && n.Threshold == 0:
		return NodeKey
	}
	return NodeInvalid
}

type groupNodeJSON struct {
	Threshold uint32          `json:"threshold,omitempty"`
	Weight    uint32          `json:"weight"`
	Key       *keys.PublicKey `json:"key,omitempty"`
	Nodes     []*GroupNode    `json:"nodes,omitempty"`
}

func (n GroupNode) MarshalJSON() ([]byte, error) {
	out := groupNodeJSON{Threshold: n.Threshold, Weight: n.Weight, Nodes: n.Nodes}
	if !n.Key.IsZero() {
		pk := n.Key
		out.Key = &pk
	}
	return json.Marshal(out)
}

func (n *GroupNode) UnmarshalJSON(data []byte) error {
	var in groupNodeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*n = GroupNode{Threshold: in.Threshold, Weight: in.Weight, Nodes: in.Nodes}
	if in.Key != nil {
		n.Key = *in.Key
	}
	return nil
}

// Group 加权授权树，由管理公钥 Key 控制
type Group struct {
	Name string         `json:"name"`
	Key  keys.PublicKey `json:"key"`
	Root *GroupNode     `json:"root"`
}

// ID 由 Key 派生的 group id
func (g *Group) ID() string {
	return GroupIDFromKey(g.Key)
}

// Keys 按深度优先顺序返回树中出现的全部公钥
func (g *Group) Keys() []keys.PublicKey {
	var out []keys.PublicKey
	var walk func(n *GroupNode)
	walk = func(n *GroupNode) {
		if n == nil {
			return
		}
		if !n.Key.IsZero() {
			out = append(out, n.Key)
		}
		for _, c := range n.Nodes {
			walk(c)
		}
	}
	walk(g.Root)
	return out
}

// Validate 检查树的形状：深度、环与共享节点、叶子/分支变体、权重与阈值。
// 所有问题一起返回。
func (g *Group) Validate() error {
	var result *multierror.Error

	if g.Key.IsZero() {
		result = multierror.Append(result, fmt.Errorf("group key is empty"))
	}
	if g.Root == nil {
		result = multierror.Append(result, fmt.Errorf("group root is empty"))
		return result.ErrorOrNil()
	}
	if g.Root.Kind() != NodeBranch {
		result = multierror.Append(result, fmt.Errorf("root: must be a branch with threshold and nodes"))
	}

	seen := make(map[*GroupNode]bool)
	onPath := make(map[*GroupNode]bool)

	var walk func(n *GroupNode, path string, depth int)
	walk = func(n *GroupNode, path string, depth int) {
		if n == nil {
			result = multierror.Append(result, fmt.Errorf("%s: node is null", path))
			return
		}
		if onPath[n] {
			result = multierror.Append(result, fmt.Errorf("%s: cycle detected", path))
			return
		}
		if seen[n] {
			result = multierror.Append(result, fmt.Errorf("%s: node is shared with another branch", path))
			return
		}
		if depth > MaxGroupDepth {
			result = multierror.Append(result, fmt.Errorf("%s: depth exceeds %d", path, MaxGroupDepth))
			return
		}
		seen[n] = true

		// 根节点的 weight 没有意义
		if depth > 1 && n.Weight == 0 {
			result = multierror.Append(result, fmt.Errorf("%s: weight must be positive", path))
		}

		switch n.Kind() {
		case NodeKey:
			return
		case NodeBranch:
		default:
			result = multierror.Append(result, fmt.Errorf("%s: node must be either a key or a branch", path))
			return
		}

		if n.Threshold == 0 {
			result = multierror.Append(result, fmt.Errorf("%s: threshold must be positive", path))
		}
		var total uint64
		for _, c := range n.Nodes {
			if c != nil {
				total += uint64(c.Weight)
			}
		}
		if total < uint64(n.Threshold) {
			result = multierror.Append(result, fmt.Errorf("%s: threshold %d is unreachable (total weight %d)", path, n.Threshold, total))
		}

		onPath[n] = true
		for i, c := range n.Nodes {
			walk(c, fmt.Sprintf("%s.nodes[%d]", path, i), depth+1)
		}
		delete(onPath, n)
	}
	walk(g.Root, "root", 1)

	return result.ErrorOrNil()
}
