package main

import (
	"github.com/syoyo/otherside/bytecode"
	"github.com/syoyo/otherside/glslstd"
)

// buildLerpDemo assembles a fragment-shader-shaped program: a lerp
// helper function, an integer loop that repeatedly blends the running
// color toward a target, a conditional early-out, and a final clamp
// through the glsl.std.450 set.
//
// Inputs: color (vec3), target (vec3), loopFlag (bool), iterations (i32).
// Output: gl_FragColor (vec4).
func buildLerpDemo() *bytecode.Program {
	b := bytecode.NewBuilder()
	void := b.TypeVoid()
	f32 := b.TypeFloat(32)
	i32 := b.TypeInt(32, true)
	boolT := b.TypeBool()
	v3 := b.TypeVector(f32, 3)
	v4 := b.TypeVector(f32, 4)
	pv3In := b.TypePointer(v3, bytecode.StorageInput)
	pbIn := b.TypePointer(boolT, bytecode.StorageInput)
	piIn := b.TypePointer(i32, bytecode.StorageInput)
	pv4Out := b.TypePointer(v4, bytecode.StorageOutput)
	pv3Fn := b.TypePointer(v3, bytecode.StorageFunction)
	piFn := b.TypePointer(i32, bytecode.StorageFunction)

	set := b.ImportExtension(glslstd.SetName)

	c0i := b.ConstI32(i32, 0)
	c1i := b.ConstI32(i32, 1)
	c1f := b.ConstF32(f32, 1)
	czero3 := b.ConstComposite(v3, b.ConstF32(f32, 0), b.ConstF32(f32, 0), b.ConstF32(f32, 0))
	cone3 := b.ConstComposite(v3, c1f, c1f, c1f)

	colorVar := b.GlobalVariable(pv3In, bytecode.StorageInput, "color")
	targetVar := b.GlobalVariable(pv3In, bytecode.StorageInput, "target")
	flagVar := b.GlobalVariable(pbIn, bytecode.StorageInput, "loopFlag")
	itersVar := b.GlobalVariable(piIn, bytecode.StorageInput, "iterations")
	fragVar := b.GlobalVariable(pv4Out, bytecode.StorageOutput, "gl_FragColor")

	// mlerp(a, b, t) = a + (b - a) * t
	mlerp := b.Function(v3, v3, v3, f32)
	b.Name(mlerp.ID(), "mlerp")
	mlerp.Block()
	diff := mlerp.FSub(v3, mlerp.Param(1), mlerp.Param(0))
	scaled := mlerp.VectorTimesScalar(v3, diff, mlerp.Param(2))
	blended := mlerp.FAdd(v3, mlerp.Param(0), scaled)
	mlerp.ReturnValue(blended)

	fn := b.Function(void)
	b.Name(fn.ID(), "main")
	fn.Block()
	acc := fn.Variable(pv3Fn)
	iVar := fn.Variable(piFn)
	base := fn.Load(v3, colorVar)
	fn.Store(acc, base)
	fn.Store(iVar, c0i)

	head := fn.NewLabel()
	body := fn.NewLabel()
	done := fn.NewLabel()
	skip := fn.NewLabel()
	exit := fn.NewLabel()

	lf := fn.Load(boolT, flagVar)
	fn.SelectionMerge(skip)
	fn.BranchConditional(lf, head, skip)

	fn.Label(head)
	li := fn.Load(i32, iVar)
	ln := fn.Load(i32, itersVar)
	cond := fn.SLessThan(boolT, li, ln)
	fn.LoopMerge(done, head)
	fn.BranchConditional(cond, body, done)

	fn.Label(body)
	fi := fn.ConvertSToF(f32, fn.Load(i32, iVar))
	fiters := fn.ConvertSToF(f32, fn.Load(i32, itersVar))
	t := fn.FDiv(f32, fi, fiters)
	cur := fn.Load(v3, acc)
	lt := fn.Load(v3, targetVar)
	next := fn.Call(v3, mlerp.ID(), cur, lt, t)
	fn.Store(acc, next)
	inc := fn.IAdd(i32, fn.Load(i32, iVar), c1i)
	fn.Store(iVar, inc)
	fn.Branch(head)

	fn.Label(done)
	fn.Branch(skip)

	fn.Label(skip)
	raw := fn.Load(v3, acc)
	clamped := fn.ExtInst(v3, set, glslstd.InstFClamp, raw, czero3, cone3)
	r := fn.CompositeExtract(f32, clamped, 0)
	g := fn.CompositeExtract(f32, clamped, 1)
	bl := fn.CompositeExtract(f32, clamped, 2)
	frag := fn.CompositeConstruct(v4, r, g, bl, c1f)
	fn.Store(fragVar, frag)
	fn.Branch(exit)

	fn.Label(exit)
	fn.Return()
	b.EntryPoint("main", fn.ID())

	return b.Program()
}

// buildSampleDemo assembles a program that samples a bound 2D texture
// at the coordinate held in the uv input and writes the texel to
// gl_FragColor.
func buildSampleDemo() *bytecode.Program {
	b := bytecode.NewBuilder()
	void := b.TypeVoid()
	f32 := b.TypeFloat(32)
	v2 := b.TypeVector(f32, 2)
	v4 := b.TypeVector(f32, 4)
	img := b.TypeImage(f32, 2, 0, 1)
	simg := b.TypeSampledImage(img)
	psimg := b.TypePointer(simg, bytecode.StorageUniformConstant)
	pv2In := b.TypePointer(v2, bytecode.StorageInput)
	pv4Out := b.TypePointer(v4, bytecode.StorageOutput)

	texVar := b.GlobalVariable(psimg, bytecode.StorageUniformConstant, "tex")
	uvVar := b.GlobalVariable(pv2In, bytecode.StorageInput, "uv")
	fragVar := b.GlobalVariable(pv4Out, bytecode.StorageOutput, "gl_FragColor")

	fn := b.Function(void)
	b.Name(fn.ID(), "main")
	fn.Block()
	ls := fn.Load(simg, texVar)
	lc := fn.Load(v2, uvVar)
	texel := fn.ImageSample(v4, ls, lc)
	fn.Store(fragVar, texel)
	fn.Return()
	b.EntryPoint("main", fn.ID())

	return b.Program()
}
