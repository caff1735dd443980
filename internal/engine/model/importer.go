package model

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/internal/engine/texture"
)

// Load imports a glTF 2.0 file (.gltf or .glb) and uploads it through dev.
// All failures are returned as *LoadError; unreadable or invalid files wrap
// ErrMalformedAsset.
func Load(path string, dev gpu.Device, opts ImportOptions) (*Model, error) {
	start := time.Now()

	doc, err := gltf.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %w", ErrMalformedAsset, err)}
	}

	b := &builder{
		doc:   doc,
		dir:   filepath.Dir(path),
		dev:   dev,
		opts:  opts,
		cache: newTextureCache(dev, opts.FlipUVs),
	}
	m, err := b.build()
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var verts, tris int
	for _, mesh := range m.meshes {
		verts += len(mesh.Vertices)
		tris += len(mesh.Indices) / 3
	}
	log().Info("model loaded",
		zap.String("path", path),
		zap.Int("meshes", len(m.meshes)),
		zap.Int("textures", m.TextureCount()),
		zap.Int("vertices", verts),
		zap.Int("triangles", tris),
		zap.Duration("took", time.Since(start)))
	return m, nil
}

type builder struct {
	doc   *gltf.Document
	dir   string
	dev   gpu.Device
	opts  ImportOptions
	cache *textureCache
}

// primitiveRef locates one primitive reached during traversal.
type primitiveRef struct {
	node, mesh, prim int
	world            mgl32.Mat4
}

func (b *builder) build() (*Model, error) {
	var refs []primitiveRef
	for _, root := range rootNodes(b.doc) {
		sub, err := collect(b.doc, root, mgl32.Ident4(), 0)
		if err != nil {
			return nil, err
		}
		refs = append(refs, sub...)
	}

	m := &Model{Directory: b.dir, textures: b.cache, dev: b.dev}
	for _, ref := range refs {
		mesh, err := b.primitive(ref)
		if err != nil {
			m.Destroy()
			return nil, err
		}
		if mesh != nil {
			m.meshes = append(m.meshes, mesh)
		}
	}
	if len(m.meshes) == 0 {
		log().Warn("model has no drawable meshes", zap.String("dir", b.dir))
	}
	return m, nil
}

// rootNodes picks the default scene, then scene 0, then every parentless node.
func rootNodes(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i, p := range hasParent {
		if !p {
			roots = append(roots, i)
		}
	}
	return roots
}

// collect returns the primitives of the subtree rooted at node idx: the
// node's own mesh first, then each child in order.
func collect(doc *gltf.Document, idx int, parent mgl32.Mat4, depth int) ([]primitiveRef, error) {
	if idx < 0 || idx >= len(doc.Nodes) {
		return nil, malformed("node %d out of range", idx)
	}
	if depth > len(doc.Nodes) {
		return nil, malformed("node hierarchy loops through node %d", idx)
	}
	node := doc.Nodes[idx]
	world := parent.Mul4(localMatrix(node))

	var refs []primitiveRef
	if node.Mesh != nil {
		mi := *node.Mesh
		if mi < 0 || mi >= len(doc.Meshes) {
			return nil, malformed("node %d: mesh %d out of range", idx, mi)
		}
		for pi := range doc.Meshes[mi].Primitives {
			refs = append(refs, primitiveRef{node: idx, mesh: mi, prim: pi, world: world})
		}
	}
	for _, child := range node.Children {
		sub, err := collect(doc, child, world, depth+1)
		if err != nil {
			return nil, err
		}
		refs = append(refs, sub...)
	}
	return refs, nil
}

var identity16 = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func localMatrix(n *gltf.Node) mgl32.Mat4 {
	if mat := n.MatrixOrDefault(); mat != identity16 {
		var out mgl32.Mat4
		for i, v := range mat {
			out[i] = float32(v)
		}
		return out
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(q.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

func (b *builder) accessor(name string, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(b.doc.Accessors) {
		return nil, malformed("%s accessor %d out of range", name, idx)
	}
	return b.doc.Accessors[idx], nil
}

// primitive converts one glTF primitive. It returns nil, nil for primitives
// that are skipped.
func (b *builder) primitive(ref primitiveRef) (*Mesh, error) {
	gm := b.doc.Meshes[ref.mesh]
	prim := gm.Primitives[ref.prim]
	name := gm.Name
	if name == "" {
		name = fmt.Sprintf("mesh%d", ref.mesh)
	}
	if len(gm.Primitives) > 1 {
		name = fmt.Sprintf("%s/%d", name, ref.prim)
	}

	switch prim.Mode {
	case gltf.PrimitiveTriangles:
	case gltf.PrimitiveTriangleStrip, gltf.PrimitiveTriangleFan:
		if !b.opts.Triangulate {
			log().Warn("skipping non-list primitive, triangulation disabled", zap.String("mesh", name))
			return nil, nil
		}
	default:
		log().Warn("skipping point/line primitive", zap.String("mesh", name), zap.Int("mode", int(prim.Mode)))
		return nil, nil
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, malformed("%s: primitive has no POSITION", name)
	}
	acr, err := b.accessor("POSITION", posIdx)
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(b.doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s positions: %w", ErrMalformedAsset, name, err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if acr, err = b.accessor("NORMAL", idx); err != nil {
			return nil, err
		}
		if normals, err = modeler.ReadNormal(b.doc, acr, nil); err != nil {
			return nil, fmt.Errorf("%w: %s normals: %w", ErrMalformedAsset, name, err)
		}
		if len(normals) != len(positions) {
			return nil, malformed("%s: %d normals for %d positions", name, len(normals), len(positions))
		}
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if acr, err = b.accessor("TEXCOORD_0", idx); err != nil {
			return nil, err
		}
		if uvs, err = modeler.ReadTextureCoord(b.doc, acr, nil); err != nil {
			return nil, fmt.Errorf("%w: %s texcoords: %w", ErrMalformedAsset, name, err)
		}
		if len(uvs) != len(positions) {
			return nil, malformed("%s: %d texcoords for %d positions", name, len(uvs), len(positions))
		}
	}

	var tangents [][4]float32
	if idx, ok := prim.Attributes[gltf.TANGENT]; ok && uvs != nil {
		if acr, err = b.accessor("TANGENT", idx); err != nil {
			return nil, err
		}
		if tangents, err = modeler.ReadTangent(b.doc, acr, nil); err != nil {
			return nil, fmt.Errorf("%w: %s tangents: %w", ErrMalformedAsset, name, err)
		}
		if len(tangents) != len(positions) {
			return nil, malformed("%s: %d tangents for %d positions", name, len(tangents), len(positions))
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if acr, err = b.accessor("indices", *prim.Indices); err != nil {
			return nil, err
		}
		if indices, err = modeler.ReadIndices(b.doc, acr, nil); err != nil {
			return nil, fmt.Errorf("%w: %s indices: %w", ErrMalformedAsset, name, err)
		}
	} else {
		indices = sequentialIndices(len(positions))
	}
	for _, i := range indices {
		if int(i) >= len(positions) {
			return nil, malformed("%s: index %d out of %d vertices", name, i, len(positions))
		}
	}
	indices, _ = triangleList(prim.Mode, indices)
	if len(indices) == 0 {
		log().Warn("skipping primitive without triangles", zap.String("mesh", name))
		return nil, nil
	}

	verts := b.vertices(ref.world, positions, normals, uvs, tangents, indices)

	textures, err := b.materialTextures(prim.Material)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return newMesh(b.dev, name, verts, indices, textures)
}

// vertices assembles the vertex array. Normals are generated when missing,
// tangent space only exists with texture coordinates. Y and Z are swapped
// last and the basis is then sign-corrected.
func (b *builder) vertices(world mgl32.Mat4, positions, normals [][3]float32, uvs [][2]float32, tangents [][4]float32, indices []uint32) []Vertex {
	normalMat := world.Mat3().Inv().Transpose()
	verts := make([]Vertex, len(positions))
	for i, p := range positions {
		pos := mgl32.Vec3(p)
		if b.opts.BakeTransforms {
			pos = mgl32.TransformCoordinate(pos, world)
		}
		verts[i].Position = pos
		if normals != nil {
			n := mgl32.Vec3(normals[i])
			if b.opts.BakeTransforms {
				n = normalizeOrZero(normalMat.Mul3x1(n))
			}
			verts[i].Normal = n
		}
		if uvs != nil {
			uv := mgl32.Vec2(uvs[i])
			if b.opts.FlipUVs {
				uv[1] = 1 - uv[1]
			}
			verts[i].TexCoord = uv
		}
	}

	if normals == nil {
		computeNormals(verts, indices)
	}

	if uvs != nil {
		if tangents != nil {
			adjusted := make([][4]float32, len(tangents))
			for i, t := range tangents {
				xyz := mgl32.Vec3{t[0], t[1], t[2]}
				if b.opts.BakeTransforms {
					xyz = world.Mat3().Mul3x1(xyz)
				}
				w := t[3]
				if b.opts.FlipUVs {
					w = -w // flipping V mirrors the bitangent
				}
				adjusted[i] = [4]float32{xyz[0], xyz[1], xyz[2], w}
			}
			tangentsFromAttribute(verts, adjusted)
		} else {
			computeTangents(verts, indices)
		}
	}

	for i := range verts {
		v := &verts[i]
		v.Position = swapYZ(v.Position)
		v.Normal = swapYZ(v.Normal)
		v.Tangent = swapYZ(v.Tangent)
		v.Bitangent = swapYZ(v.Bitangent)
		correctBasis(v)
	}
	return verts
}

func swapYZ(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[2], v[1]}
}

// materialTextures resolves diffuse, specular, normal and metallic slots in that order.
func (b *builder) materialTextures(matIdx *int) ([]Texture, error) {
	if matIdx == nil {
		return nil, nil
	}
	if *matIdx < 0 || *matIdx >= len(b.doc.Materials) {
		return nil, malformed("material %d out of range", *matIdx)
	}
	mat := b.doc.Materials[*matIdx]

	type slot struct {
		kind  TextureKind
		index int
	}
	var slots []slot
	if pbr := mat.PBRMetallicRoughness; pbr != nil && pbr.BaseColorTexture != nil {
		slots = append(slots, slot{TextureDiffuse, pbr.BaseColorTexture.Index})
	}
	if idx, ok := specularTextureIndex(mat); ok {
		slots = append(slots, slot{TextureSpecular, idx})
	}
	if nt := mat.NormalTexture; nt != nil && nt.Index != nil {
		slots = append(slots, slot{TextureNormal, *nt.Index})
	}
	if pbr := mat.PBRMetallicRoughness; pbr != nil && pbr.MetallicRoughnessTexture != nil {
		slots = append(slots, slot{TextureMetallic, pbr.MetallicRoughnessTexture.Index})
	}

	textures := make([]Texture, 0, len(slots))
	for _, s := range slots {
		tex, err := b.texture(s.index, s.kind)
		if err != nil {
			return nil, err
		}
		textures = append(textures, tex)
	}
	return textures, nil
}

// specularTextureIndex reads the specular texture from KHR_materials_specular
// or KHR_materials_pbrSpecularGlossiness without registering either extension.
func specularTextureIndex(mat *gltf.Material) (int, bool) {
	lookups := []struct{ ext, field string }{
		{"KHR_materials_specular", "specularTexture"},
		{"KHR_materials_specular", "specularColorTexture"},
		{"KHR_materials_pbrSpecularGlossiness", "specularGlossinessTexture"},
	}
	for _, l := range lookups {
		raw, ok := mat.Extensions[l.ext]
		if !ok {
			continue
		}
		data, err := json.Marshal(raw)
		if err != nil {
			continue
		}
		var fields map[string]struct {
			Index *int `json:"index"`
		}
		if err := json.Unmarshal(data, &fields); err != nil {
			continue
		}
		if info, ok := fields[l.field]; ok && info.Index != nil {
			return *info.Index, true
		}
	}
	return 0, false
}

// texture resolves glTF texture idx through the shared cache.
func (b *builder) texture(idx int, kind TextureKind) (Texture, error) {
	if idx < 0 || idx >= len(b.doc.Textures) {
		return Texture{}, malformed("texture %d out of range", idx)
	}
	src := b.doc.Textures[idx].Source
	if src == nil {
		key := fmt.Sprintf("#texture/%d", idx)
		id, err := b.cache.get(key, func() (*texture.Image, error) {
			return nil, fmt.Errorf("texture %d has no image source", idx)
		})
		return Texture{ID: id, Kind: kind, Path: key}, err
	}
	if *src < 0 || *src >= len(b.doc.Images) {
		return Texture{}, malformed("image %d out of range", *src)
	}

	key, decode := b.imageSource(*src)
	id, err := b.cache.get(key, decode)
	if err != nil {
		return Texture{}, fmt.Errorf("texture %s: %w", key, err)
	}
	return Texture{ID: id, Kind: kind, Path: key}, nil
}

// imageSource returns the cache key and decoder for image idx. External
// files are keyed by their resolved path, embedded ones by "#image/<idx>".
func (b *builder) imageSource(idx int) (string, func() (*texture.Image, error)) {
	img := b.doc.Images[idx]
	key := fmt.Sprintf("#image/%d", idx)

	switch {
	case img.URI != "" && !img.IsEmbeddedResource():
		uri := img.URI
		if u, err := url.PathUnescape(uri); err == nil {
			uri = u
		}
		path := filepath.Join(b.dir, filepath.FromSlash(uri))
		return path, func() (*texture.Image, error) { return texture.Decode(path) }
	case img.URI != "":
		return key, func() (*texture.Image, error) {
			data, err := img.MarshalData()
			if err != nil {
				return nil, err
			}
			return texture.DecodeBytes(data, img.Name)
		}
	case img.BufferView != nil:
		return key, func() (*texture.Image, error) {
			data, err := b.bufferView(*img.BufferView)
			if err != nil {
				return nil, err
			}
			return texture.DecodeBytes(data, img.Name)
		}
	default:
		return key, func() (*texture.Image, error) {
			return nil, fmt.Errorf("image %d has neither uri nor buffer view", idx)
		}
	}
}

func (b *builder) bufferView(idx int) ([]byte, error) {
	if idx < 0 || idx >= len(b.doc.BufferViews) {
		return nil, fmt.Errorf("buffer view %d out of range", idx)
	}
	bv := b.doc.BufferViews[idx]
	if bv.Buffer < 0 || bv.Buffer >= len(b.doc.Buffers) {
		return nil, fmt.Errorf("buffer %d out of range", bv.Buffer)
	}
	data := b.doc.Buffers[bv.Buffer].Data
	end := bv.ByteOffset + bv.ByteLength
	if bv.ByteOffset < 0 || end > len(data) {
		return nil, fmt.Errorf("buffer view %d exceeds buffer", idx)
	}
	return data[bv.ByteOffset:end], nil
}
