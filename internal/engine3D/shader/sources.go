package shader

// Sources are bodies without a #version line. PreprocessShader adds the
// header, the combo defines and the compatibility macros.

const postVertex = `
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec4 vertexColor;

out vec2 v_TexCoord;

uniform mat4 mvp;

void main() {
	v_TexCoord = vertexTexCoord;
	gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const litVertex = `
in vec3 vertexPosition;
in vec3 vertexNormal;

out vec3 v_WorldPosition;
out vec3 v_Normal;

uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matNormal;

void main() {
	v_WorldPosition = vec3(matModel * vec4(vertexPosition, 1.0));
	v_Normal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
	gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

// litFragment approximates a metalness/roughness surface under one point
// light and one ambient term. Output is linear.
const litFragment = `
in vec3 v_WorldPosition;
in vec3 v_Normal;

out vec4 finalColor;

uniform vec3 g_ViewPosition;
uniform vec3 g_LightPosition;
uniform vec3 g_LightColor;
uniform float g_LightDistance;
uniform float g_LightDecay;
uniform vec3 g_AmbientColor;
uniform vec3 g_BaseColor;
uniform vec3 g_Emissive;
uniform float g_Roughness;
uniform float g_Metalness;

#define PI 3.141592653589793

float distanceAttenuation(float d) {
	float falloff = 1.0 / max(pow(d, g_LightDecay), 0.01);
	if (g_LightDistance > 0.0) {
		float ratio = d / g_LightDistance;
		float window = saturate(1.0 - ratio * ratio * ratio * ratio);
		falloff *= window * window;
	}
	return falloff;
}

float ggx(float nh, float alpha) {
	float a2 = alpha * alpha;
	float denom = nh * nh * (a2 - 1.0) + 1.0;
	return a2 / (PI * denom * denom);
}

float smithVisibility(float nl, float nv, float alpha) {
	float a2 = alpha * alpha;
	float gv = nl * sqrt(a2 + (1.0 - a2) * nv * nv);
	float gl = nv * sqrt(a2 + (1.0 - a2) * nl * nl);
	return 0.5 / max(gv + gl, 1e-6);
}

void main() {
	vec3 n = normalize(v_Normal);
	vec3 v = normalize(g_ViewPosition - v_WorldPosition);
	vec3 toLight = g_LightPosition - v_WorldPosition;
	float d = length(toLight);
	vec3 l = toLight / d;
	vec3 h = normalize(l + v);

	float nl = saturate(dot(n, l));
	float nv = saturate(dot(n, v)) + 1e-5;
	float nh = saturate(dot(n, h));
	float vh = saturate(dot(v, h));

	vec3 diffuseColor = g_BaseColor * (1.0 - g_Metalness);
	vec3 specularColor = mix(vec3(0.04), g_BaseColor, g_Metalness);
	float alpha = max(g_Roughness * g_Roughness, 0.0525);

	vec3 irradiance = nl * g_LightColor * distanceAttenuation(d);
	vec3 fresnel = specularColor + (1.0 - specularColor) * pow(1.0 - vh, 5.0);
	vec3 specular = fresnel * smithVisibility(nl, nv, alpha) * ggx(nh, alpha);

	vec3 color = irradiance * (diffuseColor / PI + specular);
	color += g_AmbientColor * diffuseColor / PI;
	color += g_Emissive;

	finalColor = vec4(color, 1.0);
}
`

// starVertex expands each star quad around its center in clip space. The
// diameter in pixels is g_PointSize * g_PointScale / depth, at least one.
const starVertex = `
in vec3 vertexPosition;
in vec2 vertexTexCoord;

uniform mat4 mvp;
uniform vec2 g_Viewport;
uniform float g_PointSize;
uniform float g_PointScale;

void main() {
	vec4 clip = mvp * vec4(vertexPosition, 1.0);
	float diameter = max(g_PointSize * g_PointScale / clip.w, 1.0);
	clip.xy += vertexTexCoord * diameter * 2.0 / g_Viewport * clip.w;
	gl_Position = clip;
}
`

const starFragment = `
out vec4 finalColor;

uniform vec3 g_Color;

void main() {
	finalColor = vec4(g_Color, 1.0);
}
`

const highPassFragment = `
in vec2 v_TexCoord;

out vec4 finalColor;

uniform sampler2D g_Texture0;
uniform float g_Threshold;
uniform float g_SmoothWidth;

void main() {
	vec4 texel = texture(g_Texture0, v_TexCoord);
	float v = dot(texel.rgb, vec3(0.299, 0.587, 0.114));
	float alpha = smoothstep(g_Threshold, g_Threshold + g_SmoothWidth, v);
	finalColor = mix(vec4(0.0, 0.0, 0.0, 1.0), texel, alpha);
}
`

// blurFragment needs the KERNEL_RADIUS combo.
const blurFragment = `
in vec2 v_TexCoord;

out vec4 finalColor;

uniform sampler2D g_Texture0;
uniform vec2 g_TexelSize;
uniform vec2 g_Direction;
uniform float g_Weights[KERNEL_RADIUS];

void main() {
	vec3 sum = texture(g_Texture0, v_TexCoord).rgb * g_Weights[0];
	for (int i = 1; i < KERNEL_RADIUS; i++) {
		vec2 offset = g_Direction * g_TexelSize * float(i);
		vec3 a = texture(g_Texture0, v_TexCoord + offset).rgb;
		vec3 b = texture(g_Texture0, v_TexCoord - offset).rgb;
		sum += (a + b) * g_Weights[i];
	}
	finalColor = vec4(sum, 1.0);
}
`

const compositeFragment = `
in vec2 v_TexCoord;

out vec4 finalColor;

uniform sampler2D g_Texture0;
uniform sampler2D g_Texture1;
uniform sampler2D g_Texture2;
uniform sampler2D g_Texture3;
uniform sampler2D g_Texture4;
uniform float g_Strength;
uniform float g_Factors[MIP_LEVELS];

void main() {
	vec3 bloom = g_Factors[0] * texture(g_Texture0, v_TexCoord).rgb +
		g_Factors[1] * texture(g_Texture1, v_TexCoord).rgb +
		g_Factors[2] * texture(g_Texture2, v_TexCoord).rgb +
		g_Factors[3] * texture(g_Texture3, v_TexCoord).rgb +
		g_Factors[4] * texture(g_Texture4, v_TexCoord).rgb;
	finalColor = vec4(g_Strength * bloom, 1.0);
}
`

// outputFragment adds the glow onto the scene and encodes to sRGB.
const outputFragment = `
in vec2 v_TexCoord;

out vec4 finalColor;

uniform sampler2D g_Texture0;
uniform sampler2D g_Texture1;

vec3 linearToSRGB(vec3 c) {
	vec3 lo = c * 12.92;
	vec3 hi = 1.055 * pow(c, vec3(1.0 / 2.4)) - 0.055;
	return mix(lo, hi, step(vec3(0.0031308), c));
}

void main() {
	vec3 color = texture(g_Texture0, v_TexCoord).rgb + texture(g_Texture1, v_TexCoord).rgb;
	finalColor = vec4(linearToSRGB(saturate(color)), 1.0);
}
`
